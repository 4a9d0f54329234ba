package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// StoreRepository puerto de solo lectura sobre tiendas (chequeos de existencia).
type StoreRepository interface {
	GetByID(id string) (*entity.Store, error)
}

// VendorRepository puerto de solo lectura sobre vendors.
type VendorRepository interface {
	GetByID(id string) (*entity.Vendor, error)
}
