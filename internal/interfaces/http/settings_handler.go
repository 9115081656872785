package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/dto"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/usecase"
)

// SettingsHandler configuración de aprobación de la empresa del token.
type SettingsHandler struct {
	settings *approval.SettingsService
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(settings *approval.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get godoc
// @Summary      Configuración de aprobación
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ApprovalSettingsResponse
// @Router       /api/settings/approval [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	s, err := h.settings.Get(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToSettingsResponse(s))
}

// Update godoc
// @Summary      Actualizar configuración de aprobación
// @Description  Actualización parcial: solo cambian los campos enviados. Solo admin.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateApprovalSettingsRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ApprovalSettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings/approval [patch]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateApprovalSettingsRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	s, err := h.settings.Update(c.UserContext(), companyID, approval.SettingsPatch{
		RequireApprovalToBeAvailable:   in.RequireApprovalToBeAvailable,
		RequireApprovalToPublishOnSite: in.RequireApprovalToPublishOnSite,
		ApplyWatermarkToImages:         in.ApplyWatermarkToImages,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToSettingsResponse(s))
}
