package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/dto"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Los motivos del
// WorkflowError viajan en Reasons para mostrar uno por regla incumplida.
func writeError(c *fiber.Ctx, err error) error {
	var we *domain.WorkflowError
	if errors.As(err, &we) {
		body := dto.ErrorResponse{Code: string(we.Kind), Message: we.Error(), Reasons: we.Reasons}
		switch we.Kind {
		case domain.KindIneligibleTransition:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
		case domain.KindInvalidRejection:
			return c.Status(fiber.StatusBadRequest).JSON(body)
		case domain.KindNotFound:
			return c.Status(fiber.StatusNotFound).JSON(body)
		case domain.KindAlreadyResolved, domain.KindConflictingPendingRequest:
			return c.Status(fiber.StatusConflict).JSON(body)
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el inmueble cambió durante la operación, reintente"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
}
