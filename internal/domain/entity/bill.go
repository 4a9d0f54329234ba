package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comprobante aceptados. Todo valor desconocido cae a Invoice.
const (
	InvoiceTypeDC        = "DC"
	InvoiceTypeInvoice   = "Invoice"
	InvoiceTypeQuotation = "Quotation"
)

// ValidInvoiceType informa si t es uno de los tipos aceptados.
func ValidInvoiceType(t string) bool {
	return t == InvoiceTypeDC || t == InvoiceTypeInvoice || t == InvoiceTypeQuotation
}

// BillProduct es una línea de producto dentro de una factura (se persiste como jsonb).
type BillProduct struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// Bill es una factura emitida por una tienda. InvoiceFormatID puede quedar
// vacío: la creación procede sin formato si la cascada de resolución no
// encuentra ninguno.
type Bill struct {
	ID              string
	StoreID         string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Products        []BillProduct
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	DiscountPercent decimal.Decimal
	Tax             decimal.Decimal
	TaxPercent      decimal.Decimal
	Total           decimal.Decimal
	Notes           string
	InvoiceFormatID string
	InvoiceType     string
	CreatedAt       time.Time
}
