package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// InvoiceFormatRepository define el puerto de persistencia para formatos de
// factura y sus asignaciones por tienda/vendor.
type InvoiceFormatRepository interface {
	Create(f *entity.InvoiceFormat) error // domain.ErrDuplicate si el nombre ya existe
	GetByID(id string) (*entity.InvoiceFormat, error)
	GetByName(name string) (*entity.InvoiceFormat, error)
	List() ([]*entity.InvoiceFormat, error)
	Update(f *entity.InvoiceFormat) error
	Delete(id string) error

	// GetDefault devuelve el formato con IsDefault=true, o (nil, nil) si no hay.
	GetDefault() (*entity.InvoiceFormat, error)
	// ClearDefault pone IsDefault=false en TODOS los formatos.
	ClearDefault() error
	// MarkDefault pone IsDefault=true en el formato indicado.
	// ClearDefault+MarkDefault deben ejecutarse dentro de una misma transacción
	// (FormatTxRunner) para que nunca queden cero o dos defaults visibles.
	MarkDefault(id string) error

	// UsageCounts devuelve cuántas asignaciones de tienda, de vendor y cuántas
	// facturas referencian el formato (guard de borrado).
	UsageCounts(formatID string) (stores, vendors, bills int, err error)

	// Asignaciones: upsert nativo (ON CONFLICT sobre la columna única), una
	// asignación activa por tienda/vendor.
	AssignToStore(storeID, formatID string) error
	AssignToVendor(vendorID, formatID string) error
	GetStoreAssignment(storeID string) (*entity.StoreInvoiceFormat, error)
	GetVendorAssignment(vendorID string) (*entity.VendorInvoiceFormat, error)
	ListStoreAssignments() ([]entity.StoreInvoiceFormat, error)
	ListVendorAssignments() ([]entity.VendorInvoiceFormat, error)
}
