package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
)

// writeError traduce un error de dominio a la respuesta HTTP. Los errores no
// clasificados salen como 500 con mensaje genérico; el detalle queda en el log
// del handler de recover de Fiber.
func writeError(c *fiber.Ctx, err error) error {
	if ve, ok := domain.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error()})
	}
	if rbe, ok := domain.AsReferentialBlock(err); ok {
		resp := dto.ErrorResponse{Code: "REFERENTIAL_BLOCK", Message: rbe.Error()}
		if !rbe.IsDefault {
			resp.Counts = &dto.BlockingCounts{
				Stores:  rbe.StoreCount,
				Vendors: rbe.VendorCount,
				Bills:   rbe.BillCount,
			}
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyApproved),
		errors.Is(err, domain.ErrAlreadyRejected),
		errors.Is(err, domain.ErrRejectedIsFinal):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
