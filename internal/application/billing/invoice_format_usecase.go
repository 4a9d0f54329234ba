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

// InvoiceFormatUseCase administra formatos de factura: CRUD, el invariante de
// default único y las asignaciones por tienda/vendor.
type InvoiceFormatUseCase struct {
	formats  repository.InvoiceFormatRepository
	stores   repository.StoreRepository
	vendors  repository.VendorRepository
	txRunner FormatTxRunner
}

// NewInvoiceFormatUseCase construye el caso de uso.
func NewInvoiceFormatUseCase(
	formats repository.InvoiceFormatRepository,
	stores repository.StoreRepository,
	vendors repository.VendorRepository,
	txRunner FormatTxRunner,
) *InvoiceFormatUseCase {
	return &InvoiceFormatUseCase{formats: formats, stores: stores, vendors: vendors, txRunner: txRunner}
}

// Create crea un formato. name y template son obligatorios; name es único.
func (uc *InvoiceFormatUseCase) Create(ctx context.Context, in dto.CreateInvoiceFormatRequest) (*dto.InvoiceFormatResponse, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Template) == "" {
		missing = append(missing, "template")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	existing, err := uc.formats.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	f := &entity.InvoiceFormat{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		HeaderTemplate: in.HeaderTemplate,
		Template:       in.Template,
		FooterTemplate: in.FooterTemplate,
		IsDefault:      in.IsDefault,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Si nace como default, el clear de los demás y el insert van juntos
	// para mantener el invariante de a-lo-sumo-un-default.
	if in.IsDefault {
		err = uc.txRunner.RunFormats(ctx, func(formats repository.InvoiceFormatRepository) error {
			if err := formats.ClearDefault(); err != nil {
				return err
			}
			return formats.Create(f)
		})
	} else {
		err = uc.formats.Create(f)
	}
	if err != nil {
		return nil, err
	}
	return formatToResponse(f), nil
}

// GetByID obtiene un formato por id.
func (uc *InvoiceFormatUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceFormatResponse, error) {
	f, err := uc.formats.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return formatToResponse(f), nil
}

// List lista todos los formatos.
func (uc *InvoiceFormatUseCase) List(ctx context.Context) ([]dto.InvoiceFormatResponse, error) {
	list, err := uc.formats.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceFormatResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *formatToResponse(f))
	}
	return items, nil
}

// Update modifica parcialmente un formato. IsDefault=true pasa por el flujo
// de SetDefault; template no puede quedar vacío.
func (uc *InvoiceFormatUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceFormatRequest) (*dto.InvoiceFormatResponse, error) {
	f, err := uc.formats.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}

	var invalid []string
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		invalid = append(invalid, "name")
	}
	if in.Template != nil && strings.TrimSpace(*in.Template) == "" {
		invalid = append(invalid, "template")
	}
	if len(invalid) > 0 {
		return nil, domain.NewValidationError(invalid...)
	}

	if in.Name != nil && *in.Name != f.Name {
		other, err := uc.formats.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != f.ID {
			return nil, domain.ErrDuplicate
		}
		f.Name = *in.Name
	}
	if in.Description != nil {
		f.Description = *in.Description
	}
	if in.HeaderTemplate != nil {
		f.HeaderTemplate = *in.HeaderTemplate
	}
	if in.Template != nil {
		f.Template = *in.Template
	}
	if in.FooterTemplate != nil {
		f.FooterTemplate = *in.FooterTemplate
	}
	f.UpdatedAt = time.Now()

	if in.IsDefault != nil && *in.IsDefault && !f.IsDefault {
		f.IsDefault = true
		err = uc.txRunner.RunFormats(ctx, func(formats repository.InvoiceFormatRepository) error {
			if err := formats.ClearDefault(); err != nil {
				return err
			}
			if err := formats.Update(f); err != nil {
				return err
			}
			return formats.MarkDefault(f.ID)
		})
	} else {
		if in.IsDefault != nil {
			f.IsDefault = *in.IsDefault
		}
		err = uc.formats.Update(f)
	}
	if err != nil {
		return nil, err
	}
	return formatToResponse(f), nil
}

// SetDefault marca el formato como default único. Clear-then-set dentro de
// una transacción: después de la llamada ningún formato queda como "el
// default anterior".
func (uc *InvoiceFormatUseCase) SetDefault(ctx context.Context, id string) error {
	f, err := uc.formats.GetByID(id)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunFormats(ctx, func(formats repository.InvoiceFormatRepository) error {
		if err := formats.ClearDefault(); err != nil {
			return err
		}
		return formats.MarkDefault(id)
	})
}

// Delete elimina un formato. Se rehúsa si es el default o si lo referencia
// alguna asignación de tienda/vendor o alguna factura, reportando los conteos
// exactos que bloquean.
func (uc *InvoiceFormatUseCase) Delete(ctx context.Context, id string) error {
	f, err := uc.formats.GetByID(id)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNotFound
	}
	if f.IsDefault {
		return &domain.ReferentialBlockError{IsDefault: true}
	}
	stores, vendors, bills, err := uc.formats.UsageCounts(id)
	if err != nil {
		return err
	}
	if stores > 0 || vendors > 0 || bills > 0 {
		return &domain.ReferentialBlockError{StoreCount: stores, VendorCount: vendors, BillCount: bills}
	}
	return uc.formats.Delete(id)
}

// AssignToStore asigna un formato a una tienda (upsert: a lo sumo una
// asignación activa por tienda, la anterior se sobreescribe).
func (uc *InvoiceFormatUseCase) AssignToStore(ctx context.Context, storeID, formatID string) error {
	store, err := uc.stores.GetByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	f, err := uc.formats.GetByID(formatID)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNotFound
	}
	return uc.formats.AssignToStore(storeID, formatID)
}

// AssignToVendor asigna un formato a un vendor (upsert).
func (uc *InvoiceFormatUseCase) AssignToVendor(ctx context.Context, vendorID, formatID string) error {
	vendor, err := uc.vendors.GetByID(vendorID)
	if err != nil {
		return err
	}
	if vendor == nil {
		return domain.ErrNotFound
	}
	f, err := uc.formats.GetByID(formatID)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNotFound
	}
	return uc.formats.AssignToVendor(vendorID, formatID)
}

// GetStoreFormat devuelve el formato asignado a la tienda, o nil si no tiene.
func (uc *InvoiceFormatUseCase) GetStoreFormat(ctx context.Context, storeID string) (*dto.InvoiceFormatResponse, error) {
	assignment, err := uc.formats.GetStoreAssignment(storeID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, nil
	}
	f, err := uc.formats.GetByID(assignment.FormatID)
	if err != nil {
		return nil, err
	}
	return formatToResponse(f), nil
}

// GetVendorFormat devuelve el formato asignado al vendor, o nil si no tiene.
func (uc *InvoiceFormatUseCase) GetVendorFormat(ctx context.Context, vendorID string) (*dto.InvoiceFormatResponse, error) {
	assignment, err := uc.formats.GetVendorAssignment(vendorID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, nil
	}
	f, err := uc.formats.GetByID(assignment.FormatID)
	if err != nil {
		return nil, err
	}
	return formatToResponse(f), nil
}

// ListAssignments devuelve todas las asignaciones vigentes.
func (uc *InvoiceFormatUseCase) ListAssignments(ctx context.Context) (*dto.AssignmentsListResponse, error) {
	storeAssignments, err := uc.formats.ListStoreAssignments()
	if err != nil {
		return nil, err
	}
	vendorAssignments, err := uc.formats.ListVendorAssignments()
	if err != nil {
		return nil, err
	}
	out := &dto.AssignmentsListResponse{
		Stores:  make([]dto.FormatAssignmentResponse, 0, len(storeAssignments)),
		Vendors: make([]dto.FormatAssignmentResponse, 0, len(vendorAssignments)),
	}
	for _, a := range storeAssignments {
		out.Stores = append(out.Stores, dto.FormatAssignmentResponse{StoreID: a.StoreID, FormatID: a.FormatID})
	}
	for _, a := range vendorAssignments {
		out.Vendors = append(out.Vendors, dto.FormatAssignmentResponse{VendorID: a.VendorID, FormatID: a.FormatID})
	}
	return out, nil
}

func formatToResponse(f *entity.InvoiceFormat) *dto.InvoiceFormatResponse {
	if f == nil {
		return nil
	}
	return &dto.InvoiceFormatResponse{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		HeaderTemplate: f.HeaderTemplate,
		Template:       f.Template,
		FooterTemplate: f.FooterTemplate,
		IsDefault:      f.IsDefault,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}
