package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillProductDTO línea de producto de una factura.
type BillProductDTO struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// CreateBillRequest cuerpo de POST /billing/create. CurrentVendorUserID
// participa en la cascada de resolución de formato (tienda -> vendor -> default).
type CreateBillRequest struct {
	StoreID             string           `json:"storeId"`
	CurrentVendorUserID string           `json:"currentVendorUserId"`
	CustomerName        string           `json:"customerName"`
	CustomerEmail       string           `json:"customerEmail"`
	CustomerPhone       string           `json:"customerPhone"`
	Products            []BillProductDTO `json:"products"`
	Subtotal            decimal.Decimal  `json:"subtotal"`
	Discount            decimal.Decimal  `json:"discount"`
	DiscountPercent     decimal.Decimal  `json:"discountPercent"`
	Tax                 decimal.Decimal  `json:"tax"`
	TaxPercent          decimal.Decimal  `json:"taxPercent"`
	Total               decimal.Decimal  `json:"total"`
	Notes               string           `json:"notes"`
	InvoiceFormatID     string           `json:"invoiceFormatId"`
	InvoiceType         string           `json:"invoiceType"`
}

// BillResponse representación de una factura.
type BillResponse struct {
	ID              string           `json:"id"`
	StoreID         string           `json:"storeId"`
	CustomerName    string           `json:"customerName,omitempty"`
	CustomerEmail   string           `json:"customerEmail,omitempty"`
	CustomerPhone   string           `json:"customerPhone,omitempty"`
	Products        []BillProductDTO `json:"products"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	Discount        decimal.Decimal  `json:"discount"`
	DiscountPercent decimal.Decimal  `json:"discountPercent"`
	Tax             decimal.Decimal  `json:"tax"`
	TaxPercent      decimal.Decimal  `json:"taxPercent"`
	Total           decimal.Decimal  `json:"total"`
	Notes           string           `json:"notes,omitempty"`
	InvoiceFormatID string           `json:"invoiceFormatId,omitempty"`
	InvoiceType     string           `json:"invoiceType"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// BillListResponse listado de facturas de una tienda.
type BillListResponse struct {
	Items []BillResponse `json:"items"`
}
