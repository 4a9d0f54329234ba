package dto

import "time"

// CreateInvoiceFormatRequest cuerpo de POST /invoice-formats/create.
type CreateInvoiceFormatRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	HeaderTemplate string `json:"headerTemplate"`
	Template       string `json:"template"`
	FooterTemplate string `json:"footerTemplate"`
	IsDefault      bool   `json:"isDefault"`
}

// UpdateInvoiceFormatRequest cuerpo de POST /invoice-formats/update/:id.
// Punteros: campos ausentes no se tocan.
type UpdateInvoiceFormatRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	HeaderTemplate *string `json:"headerTemplate"`
	Template       *string `json:"template"`
	FooterTemplate *string `json:"footerTemplate"`
	IsDefault      *bool   `json:"isDefault"`
}

// AssignFormatRequest cuerpo de los POST .../assign.
type AssignFormatRequest struct {
	FormatID string `json:"formatId"`
}

// InvoiceFormatResponse representación de un formato.
type InvoiceFormatResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	HeaderTemplate string    `json:"headerTemplate,omitempty"`
	Template       string    `json:"template"`
	FooterTemplate string    `json:"footerTemplate,omitempty"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FormatAssignmentResponse una asignación tienda/vendor -> formato.
type FormatAssignmentResponse struct {
	StoreID  string `json:"storeId,omitempty"`
	VendorID string `json:"vendorId,omitempty"`
	FormatID string `json:"formatId"`
}

// AssignmentsListResponse todas las asignaciones vigentes.
type AssignmentsListResponse struct {
	Stores  []FormatAssignmentResponse `json:"stores"`
	Vendors []FormatAssignmentResponse `json:"vendors"`
}
