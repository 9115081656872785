package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/dto"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/usecase"
)

// ApprovalHandler colas de aprobación y resolución de solicitudes.
type ApprovalHandler struct {
	queue    *approval.QueueManager
	workflow *approval.Workflow
}

// NewApprovalHandler construye el handler.
func NewApprovalHandler(queue *approval.QueueManager, workflow *approval.Workflow) *ApprovalHandler {
	return &ApprovalHandler{queue: queue, workflow: workflow}
}

// ListPending godoc
// @Summary      Cola de aprobación
// @Description  Inmuebles con solicitud PENDING del tipo indicado. sort_by: created_at (defecto), updated_at,
// @Description  requested_at y, solo para PUBLICATION, publication_requested_at.
// @Tags         approvals
// @Security     Bearer
// @Produce      json
// @Param        kind        query  string  true   "AVAILABILITY | PUBLICATION"
// @Param        sort_by     query  string  false  "Campo de orden"
// @Param        sort_order  query  string  false  "asc | desc"  default(desc)
// @Success      200  {object}  dto.PendingListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/approvals/pending [get]
func (h *ApprovalHandler) ListPending(c *fiber.Ctx) error {
	kind := strings.ToUpper(c.Query("kind"))
	list, err := h.queue.ListPendingFor(c.UserContext(), GetCompanyID(c), kind, c.Query("sort_by"), c.Query("sort_order"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PendingListResponse{Kind: kind, Items: usecase.ToPendingResponses(list)})
}

// ListMine godoc
// @Summary      Mis solicitudes pendientes
// @Description  Inmuebles cuyas solicitudes pendientes creó el usuario del token, agrupadas por tipo.
// @Tags         approvals
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MyPendingResponse
// @Router       /api/approvals/mine [get]
func (h *ApprovalHandler) ListMine(c *fiber.Ctx) error {
	mine, err := h.queue.ListMine(c.UserContext(), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MyPendingResponse{
		PendingAvailability: usecase.ToPendingResponses(mine.PendingAvailability),
		PendingPublication:  usecase.ToPendingResponses(mine.PendingPublication),
	})
}

// Enqueue godoc
// @Summary      Encolar solicitud
// @Description  Crea la solicitud PENDING o devuelve la existente del mismo inmueble y tipo. No evalúa elegibilidad.
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body    body   dto.EnqueueRequest  true   "Inmueble y tipo"
// @Param        strict  query  bool                false  "Error si ya hay una pendiente"
// @Success      202  {object}  dto.ApprovalRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/approvals [post]
func (h *ApprovalHandler) Enqueue(c *fiber.Ctx) error {
	var in dto.EnqueueRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	req, err := h.workflow.Enqueue(c.UserContext(), in.PropertyID, in.Kind, approval.ToggleOptions{
		CompanyID:     GetCompanyID(c),
		UserID:        GetUserID(c),
		StrictEnqueue: c.QueryBool("strict", false),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(usecase.ToApprovalRequestResponse(req))
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Description  Revalida la elegibilidad y aplica la transición. Repetir sobre una solicitud resuelta devuelve
// @Description  la resolución existente; con strict=true responde 409 ALREADY_RESOLVED.
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path   string              true   "ID de la solicitud"
// @Param        body    body   dto.ApproveRequest  false  "Sobrescritura de marca de agua"
// @Param        strict  query  bool                false  "Modo estricto"
// @Success      200  {object}  dto.ResolutionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/approvals/{id}/approve [post]
func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveRequest
	if len(c.Body()) > 0 {
		if ok, err := bindBody(c, &in); !ok {
			return err
		}
	}
	res, err := h.queue.Resolve(c.UserContext(), c.Params("id"), approval.DecisionApprove, approval.ResolveOptions{
		CompanyID:      GetCompanyID(c),
		UserID:         GetUserID(c),
		ApplyWatermark: in.ApplyWatermark,
		Strict:         c.QueryBool("strict", false),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToResolutionResponse(res))
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Description  reason es obligatorio. El estado visible del inmueble no cambia.
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path   string             true   "ID de la solicitud"
// @Param        body    body   dto.RejectRequest  true   "Motivo"
// @Param        strict  query  bool               false  "Modo estricto"
// @Success      200  {object}  dto.ResolutionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/approvals/{id}/reject [post]
func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.queue.Resolve(c.UserContext(), c.Params("id"), approval.DecisionReject, approval.ResolveOptions{
		CompanyID: GetCompanyID(c),
		UserID:    GetUserID(c),
		Reason:    in.Reason,
		Strict:    c.QueryBool("strict", false),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToResolutionResponse(res))
}
