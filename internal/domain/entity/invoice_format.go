package entity

import "time"

// InvoiceFormat es una plantilla de factura. A lo sumo una fila tiene
// IsDefault=true en todo momento; el write path lo garantiza (clear-then-set
// dentro de una transacción, no hay constraint en la base).
type InvoiceFormat struct {
	ID             string
	Name           string // único
	Description    string
	HeaderTemplate string
	Template       string // obligatorio
	FooterTemplate string
	IsDefault      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StoreInvoiceFormat asigna un formato a una tienda. Una tienda tiene a lo
// sumo una asignación activa.
type StoreInvoiceFormat struct {
	StoreID   string
	FormatID  string
	UpdatedAt time.Time
}

// VendorInvoiceFormat asigna un formato a un vendor. Un vendor tiene a lo
// sumo una asignación activa.
type VendorInvoiceFormat struct {
	VendorID  string
	FormatID  string
	UpdatedAt time.Time
}
