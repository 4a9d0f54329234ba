package repository

import (
	"time"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

// SubUserRepository define el puerto de persistencia para SubUser (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando no hay fila.
type SubUserRepository interface {
	Create(su *entity.SubUser) error
	GetByID(id string) (*entity.SubUser, error)
	GetByEmail(email string) (*entity.SubUser, error)
	// ListByTenant lista los sub-usuarios del vendor o de la tienda indicada
	// (exactamente uno de los dos es no vacío).
	ListByTenant(vendorID, storeID string) ([]*entity.SubUser, error)
	// ListByStatus filtra por estado; vendorID/storeID vacíos = sin scoping (admin).
	ListByStatus(vendorID, storeID, status string) ([]*entity.SubUser, error)
	// ListPending devuelve todos los pendientes con nombres de creador y tenant resueltos.
	ListPending() ([]*entity.PendingSubUser, error)
	Update(su *entity.SubUser) error
	Delete(id string) error

	// EmailTaken informa si email (ya en minúsculas) existe en users o en
	// sub_users, excluyendo opcionalmente un sub-usuario por id.
	EmailTaken(email, excludeSubUserID string) (bool, error)

	// ApproveIfPending ejecuta UPDATE ... WHERE status='pending' y devuelve si
	// afectó una fila. El conteo de filas es la señal de idempotencia: evita el
	// read-then-write del chequeo "ya aprobado".
	ApproveIfPending(id, adminID string, now time.Time) (bool, error)
	// RejectIfNotRejected ejecuta UPDATE ... WHERE status <> 'rejected'.
	// Rechazar un aprobado está permitido (degradación); re-rechazar no.
	RejectIfNotRejected(id, adminID, reason string, now time.Time) (bool, error)

	// Summary calcula los conteos del tenant; vendorID/storeID vacíos = global.
	Summary(vendorID, storeID string) (*entity.SubUserSummary, error)
}
