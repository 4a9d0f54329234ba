package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketplace-api/internal/application/billing"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
)

// BillingHandler maneja la emisión y consulta de facturas (protegido).
type BillingHandler struct {
	bills *billing.BillUseCase
	pdf   *billing.BillPDFUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(bills *billing.BillUseCase, pdf *billing.BillPDFUseCase) *BillingHandler {
	return &BillingHandler{bills: bills, pdf: pdf}
}

// Create emite una factura resolviendo el formato con la cascada.
// POST /api/billing/create
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.bills.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get obtiene una factura.
// GET /api/billing/:id
func (h *BillingHandler) Get(c *fiber.Ctx) error {
	resp, err := h.bills.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// ListByStore lista facturas de una tienda.
// GET /api/billing/store/:storeId?limit=&offset=
func (h *BillingHandler) ListByStore(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	resp, err := h.bills.ListByStore(c.Context(), c.Params("storeId"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// DownloadPDF genera y descarga el PDF de la factura.
// GET /api/billing/:id/pdf
func (h *BillingHandler) DownloadPDF(c *fiber.Ctx) error {
	data, err := h.pdf.Download(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="factura-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}
