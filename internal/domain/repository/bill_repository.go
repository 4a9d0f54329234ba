package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// BillRepository define el puerto de persistencia para Bill.
type BillRepository interface {
	Create(b *entity.Bill) error
	GetByID(id string) (*entity.Bill, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.Bill, error)
}
