package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketplace-api/internal/application/billing"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
)

// InvoiceFormatHandler maneja formatos de factura y sus asignaciones. Las
// lecturas son para cualquier autenticado; las mutaciones van detrás de
// RequireAdmin en el router.
type InvoiceFormatHandler struct {
	uc *billing.InvoiceFormatUseCase
}

// NewInvoiceFormatHandler construye el handler.
func NewInvoiceFormatHandler(uc *billing.InvoiceFormatUseCase) *InvoiceFormatHandler {
	return &InvoiceFormatHandler{uc: uc}
}

// List lista todos los formatos.
// GET /api/invoice-formats/list
func (h *InvoiceFormatHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// Get obtiene un formato por id.
// GET /api/invoice-formats/:id
func (h *InvoiceFormatHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Create crea un formato (admin).
// POST /api/invoice-formats/create
func (h *InvoiceFormatHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceFormatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update actualiza parcialmente un formato (admin).
// POST /api/invoice-formats/update/:id
func (h *InvoiceFormatHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceFormatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina un formato si nada lo referencia (admin).
// POST /api/invoice-formats/delete/:id
func (h *InvoiceFormatHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetDefault marca un formato como default único (admin).
// POST /api/invoice-formats/default/:id
func (h *InvoiceFormatHandler) SetDefault(c *fiber.Ctx) error {
	if err := h.uc.SetDefault(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetStoreFormat devuelve el formato asignado a una tienda (null si no hay).
// GET /api/invoice-formats/store/:storeId
func (h *InvoiceFormatHandler) GetStoreFormat(c *fiber.Ctx) error {
	resp, err := h.uc.GetStoreFormat(c.Context(), c.Params("storeId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"format": resp})
}

// AssignToStore asigna un formato a una tienda (admin).
// POST /api/invoice-formats/store/:storeId/assign
func (h *InvoiceFormatHandler) AssignToStore(c *fiber.Ctx) error {
	var in dto.AssignFormatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FormatID == "" {
		return writeError(c, domain.NewValidationError("formatId"))
	}
	if err := h.uc.AssignToStore(c.Context(), c.Params("storeId"), in.FormatID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetVendorFormat devuelve el formato asignado a un vendor (null si no hay).
// GET /api/invoice-formats/vendor/:vendorId
func (h *InvoiceFormatHandler) GetVendorFormat(c *fiber.Ctx) error {
	resp, err := h.uc.GetVendorFormat(c.Context(), c.Params("vendorId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"format": resp})
}

// AssignToVendor asigna un formato a un vendor (admin).
// POST /api/invoice-formats/vendor/:vendorId/assign
func (h *InvoiceFormatHandler) AssignToVendor(c *fiber.Ctx) error {
	var in dto.AssignFormatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FormatID == "" {
		return writeError(c, domain.NewValidationError("formatId"))
	}
	if err := h.uc.AssignToVendor(c.Context(), c.Params("vendorId"), in.FormatID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAssignments devuelve todas las asignaciones vigentes.
// GET /api/invoice-formats/assignments
func (h *InvoiceFormatHandler) ListAssignments(c *fiber.Ctx) error {
	resp, err := h.uc.ListAssignments(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
