package billing

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// FormatTxRunner ejecuta una función dentro de una transacción sobre el repo
// de formatos. Se usa para el swap de default (clear-then-set): sin la
// transacción un lector concurrente podría ver cero o dos defaults.
type FormatTxRunner interface {
	RunFormats(ctx context.Context, fn func(formats repository.InvoiceFormatRepository) error) error
}

// BillPDFGenerator genera la representación PDF de una factura. format puede
// ser nil si la factura no tiene formato vinculado; el generador usa entonces
// su layout plano.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, bill *entity.Bill, format *entity.InvoiceFormat) ([]byte, error)
}
