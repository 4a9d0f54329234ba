package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// BillUseCase crea y consulta facturas. En la creación resuelve el formato
// aplicable con la cascada: explícito -> asignación de tienda -> asignación
// del vendor -> formato default -> sin formato.
type BillUseCase struct {
	bills   repository.BillRepository
	formats repository.InvoiceFormatRepository
	stores  repository.StoreRepository
	users   repository.UserRepository
}

// NewBillUseCase construye el caso de uso de facturación.
func NewBillUseCase(
	bills repository.BillRepository,
	formats repository.InvoiceFormatRepository,
	stores repository.StoreRepository,
	users repository.UserRepository,
) *BillUseCase {
	return &BillUseCase{bills: bills, formats: formats, stores: stores, users: users}
}

// Create crea una factura. La resolución de formato nunca bloquea la
// creación: si ningún paso de la cascada produce un formato, la factura se
// guarda sin vínculo.
func (uc *BillUseCase) Create(ctx context.Context, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	var missing []string
	if strings.TrimSpace(in.StoreID) == "" {
		missing = append(missing, "storeId")
	}
	if len(in.Products) == 0 {
		missing = append(missing, "products")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	store, err := uc.stores.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	formatID, err := uc.resolveFormat(ctx, in)
	if err != nil {
		return nil, err
	}

	invoiceType := in.InvoiceType
	if !entity.ValidInvoiceType(invoiceType) {
		invoiceType = entity.InvoiceTypeInvoice
	}

	products := make([]entity.BillProduct, 0, len(in.Products))
	for _, p := range in.Products {
		products = append(products, entity.BillProduct{
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Total:     p.Total,
		})
	}

	b := &entity.Bill{
		ID:              uuid.New().String(),
		StoreID:         in.StoreID,
		CustomerName:    in.CustomerName,
		CustomerEmail:   strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		CustomerPhone:   in.CustomerPhone,
		Products:        products,
		Subtotal:        in.Subtotal,
		Discount:        in.Discount,
		DiscountPercent: in.DiscountPercent,
		Tax:             in.Tax,
		TaxPercent:      in.TaxPercent,
		Total:           in.Total,
		Notes:           in.Notes,
		InvoiceFormatID: formatID,
		InvoiceType:     invoiceType,
		CreatedAt:       time.Now(),
	}
	if err := uc.bills.Create(b); err != nil {
		return nil, err
	}
	return billToResponse(b), nil
}

// resolveFormat aplica la cascada de resolución y devuelve el id del formato
// o "" si no hay ninguno aplicable. Un formatId explícito inexistente es un
// error del caller, no un paso más de la cascada.
func (uc *BillUseCase) resolveFormat(ctx context.Context, in dto.CreateBillRequest) (string, error) {
	if in.InvoiceFormatID != "" {
		f, err := uc.formats.GetByID(in.InvoiceFormatID)
		if err != nil {
			return "", err
		}
		if f == nil {
			return "", domain.NewValidationError("invoiceFormatId")
		}
		return f.ID, nil
	}

	storeAssignment, err := uc.formats.GetStoreAssignment(in.StoreID)
	if err != nil {
		return "", err
	}
	if storeAssignment != nil {
		return storeAssignment.FormatID, nil
	}

	// El vendor se resuelve vía el usuario actual; un id inválido o un
	// usuario sin vendor simplemente no aporta formato.
	if in.CurrentVendorUserID != "" {
		u, err := uc.users.GetByID(in.CurrentVendorUserID)
		if err != nil {
			return "", err
		}
		if u != nil && u.VendorID != "" {
			vendorAssignment, err := uc.formats.GetVendorAssignment(u.VendorID)
			if err != nil {
				return "", err
			}
			if vendorAssignment != nil {
				return vendorAssignment.FormatID, nil
			}
		}
	}

	def, err := uc.formats.GetDefault()
	if err != nil {
		return "", err
	}
	if def != nil {
		return def.ID, nil
	}
	return "", nil
}

// GetByID obtiene una factura.
func (uc *BillUseCase) GetByID(ctx context.Context, id string) (*dto.BillResponse, error) {
	b, err := uc.bills.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return billToResponse(b), nil
}

// ListByStore lista facturas de una tienda, más recientes primero.
func (uc *BillUseCase) ListByStore(ctx context.Context, storeID string, page dto.PageRequest) (*dto.BillListResponse, error) {
	page.DefaultPage()
	list, err := uc.bills.ListByStore(storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.BillListResponse{Items: make([]dto.BillResponse, 0, len(list))}
	for _, b := range list {
		out.Items = append(out.Items, *billToResponse(b))
	}
	return out, nil
}

func billToResponse(b *entity.Bill) *dto.BillResponse {
	products := make([]dto.BillProductDTO, 0, len(b.Products))
	for _, p := range b.Products {
		products = append(products, dto.BillProductDTO{
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Total:     p.Total,
		})
	}
	return &dto.BillResponse{
		ID:              b.ID,
		StoreID:         b.StoreID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		Products:        products,
		Subtotal:        b.Subtotal,
		Discount:        b.Discount,
		DiscountPercent: b.DiscountPercent,
		Tax:             b.Tax,
		TaxPercent:      b.TaxPercent,
		Total:           b.Total,
		Notes:           b.Notes,
		InvoiceFormatID: b.InvoiceFormatID,
		InvoiceType:     b.InvoiceType,
		CreatedAt:       b.CreatedAt,
	}
}
