package billing

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// BillPDFUseCase produce el PDF de una factura usando el formato que quedó
// vinculado al momento de la emisión.
type BillPDFUseCase struct {
	bills     repository.BillRepository
	formats   repository.InvoiceFormatRepository
	generator BillPDFGenerator
}

// NewBillPDFUseCase construye el caso de uso de descarga de PDF.
func NewBillPDFUseCase(bills repository.BillRepository, formats repository.InvoiceFormatRepository, generator BillPDFGenerator) *BillPDFUseCase {
	return &BillPDFUseCase{bills: bills, formats: formats, generator: generator}
}

// Download genera el PDF de la factura. Si el formato vinculado ya no existe
// (se borró después de emitir) el PDF sale con el layout plano.
func (uc *BillPDFUseCase) Download(ctx context.Context, billID string) ([]byte, error) {
	b, err := uc.bills.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	var format *entity.InvoiceFormat
	if b.InvoiceFormatID != "" {
		format, err = uc.formats.GetByID(b.InvoiceFormatID)
		if err != nil {
			return nil, err
		}
	}
	return uc.generator.GenerateBillPDF(ctx, b, format)
}
