package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/dto"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/usecase"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/property"
)

// PropertyHandler maneja inmuebles (protegido): atributos descriptivos y acciones de estado.
type PropertyHandler struct {
	uc       *usecase.PropertyUseCase
	workflow *approval.Workflow
}

// NewPropertyHandler construye el handler.
func NewPropertyHandler(uc *usecase.PropertyUseCase, workflow *approval.Workflow) *PropertyHandler {
	return &PropertyHandler{uc: uc, workflow: workflow}
}

// Create godoc
// @Summary      Crear inmueble
// @Description  Crea el inmueble en borrador, activo y sin publicar. Puede estar incompleto.
// @Tags         properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PropertyRequest  true  "Datos del inmueble"
// @Success      201   {object}  dto.PropertyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.PropertyRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener inmueble
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del inmueble"
// @Success      200  {object}  dto.PropertyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar inmuebles
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.PropertyListResponse
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), companyID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar inmueble
// @Description  Reemplaza atributos descriptivos e imágenes. Nunca cambia estado ni publicación.
// @Tags         properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del inmueble"
// @Param        body  body  dto.PropertyRequest  true  "Datos del inmueble"
// @Success      200   {object}  dto.PropertyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/properties/{id} [put]
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	var in dto.PropertyRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Eligibility godoc
// @Summary      Elegibilidad del inmueble
// @Description  Evalúa las reglas para quedar disponible y para publicar en el sitio, con todos los motivos.
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del inmueble"
// @Success      200  {object}  dto.EligibilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/properties/{id}/eligibility [get]
func (h *PropertyHandler) Eligibility(c *fiber.Ctx) error {
	out, err := h.uc.Eligibility(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de aprobaciones
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del inmueble"
// @Success      200  {object}  dto.ApprovalHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/properties/{id}/approvals [get]
func (h *PropertyHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Action godoc
// @Summary      Ejecutar acción sobre el inmueble
// @Description  Acciones: request_available, request_publish, request_unpublish, mark_sold, mark_rented,
// @Description  mark_maintenance, activate, deactivate. Si la empresa exige aprobación la acción queda
// @Description  en cola (202). strict=true devuelve 409 si ya hay una solicitud pendiente.
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del inmueble"
// @Param        action  path   string  true   "Acción"
// @Param        strict  query  bool    false  "Encolado estricto"
// @Success      200     {object}  dto.TransitionResponse
// @Success      202     {object}  dto.TransitionResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/properties/{id}/actions/{action} [post]
func (h *PropertyHandler) Action(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	action := property.Action(c.Params("action"))
	if !property.ValidAction(action) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ACTION", Message: "acción desconocida: " + string(action)})
	}
	res, err := h.workflow.Toggle(c.UserContext(), c.Params("id"), action, approval.ToggleOptions{
		CompanyID:     companyID,
		UserID:        GetUserID(c),
		StrictEnqueue: c.QueryBool("strict", false),
	})
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if res.Queued() {
		status = fiber.StatusAccepted
	}
	return c.Status(status).JSON(usecase.ToTransitionResponse(res))
}
