package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/usecase"
)

// FeedHandler feed público de inmuebles publicados (sin autenticación).
type FeedHandler struct {
	uc *usecase.FeedUseCase
}

// NewFeedHandler construye el handler.
func NewFeedHandler(uc *usecase.FeedUseCase) *FeedHandler {
	return &FeedHandler{uc: uc}
}

// Feed godoc
// @Summary      Feed XML de inmuebles publicados
// @Description  Solo inmuebles activos, disponibles y publicados en el sitio.
// @Tags         public
// @Produce      xml
// @Param        company_id  path  string  true  "ID de la empresa"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/companies/{company_id}/feed.xml [get]
func (h *FeedHandler) Feed(c *fiber.Ctx) error {
	raw, err := h.uc.Build(c.UserContext(), c.Params("company_id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(raw)
}
