package permission

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// SubUserPermissions aplica la puerta de autorización sobre permisos de
// sub-usuario: un vendor solo puede actuar sobre sub-usuarios de su vendor,
// una tienda sobre los suyos; cualquier otro rol no-admin se deniega. El
// admin no tiene restricción.
type SubUserPermissions struct {
	subUsers repository.SubUserRepository
	authz    *Authorizer
}

// NewSubUserPermissions construye el caso de uso.
func NewSubUserPermissions(subUsers repository.SubUserRepository, authz *Authorizer) *SubUserPermissions {
	return &SubUserPermissions{subUsers: subUsers, authz: authz}
}

// GetAll devuelve el mapa completo de permisos del sub-usuario.
func (s *SubUserPermissions) GetAll(ctx context.Context, ident domain.Identity, subUserID string) (map[string]bool, error) {
	if err := s.ensureAccess(ident, subUserID); err != nil {
		return nil, err
	}
	return s.authz.GetAll(ctx, subUserID)
}

// SetOne hace upsert de una llave del sub-usuario.
func (s *SubUserPermissions) SetOne(ctx context.Context, ident domain.Identity, subUserID, menuKey string, enabled bool) (*dto.PermissionResponse, error) {
	if err := s.ensureAccess(ident, subUserID); err != nil {
		return nil, err
	}
	return s.authz.SetOne(ctx, subUserID, menuKey, enabled)
}

// SetBulk aplica un lote de permisos del sub-usuario.
func (s *SubUserPermissions) SetBulk(ctx context.Context, ident domain.Identity, subUserID string, raw map[string]any) (map[string]bool, error) {
	if err := s.ensureAccess(ident, subUserID); err != nil {
		return nil, err
	}
	return s.authz.SetBulk(ctx, subUserID, raw)
}

// ensureAccess valida existencia y propiedad. A diferencia del CRUD de
// sub-usuarios (donde fuera-de-alcance se reporta como 404), aquí el
// desajuste de dueño se deniega explícitamente: el caller ya conoce el id.
func (s *SubUserPermissions) ensureAccess(ident domain.Identity, subUserID string) error {
	su, err := s.subUsers.GetByID(subUserID)
	if err != nil {
		return err
	}
	if su == nil {
		return domain.ErrNotFound
	}
	if ident.IsAdmin() {
		return nil
	}
	switch ident.Role {
	case domain.RoleVendor:
		if su.VendorID != "" && su.VendorID == ident.VendorID {
			return nil
		}
	case domain.RoleStore:
		if su.StoreID != "" && su.StoreID == ident.StoreID {
			return nil
		}
	}
	return domain.ErrAccessDenied
}

// StorePermissions gestiona los permisos de menú por tienda. Solo admin (lo
// garantiza el router); aquí solo se valida que la tienda exista. El default
// de lectura para llaves sin fila es true: las tiendas son confiables por
// defecto, al contrario que los sub-usuarios.
type StorePermissions struct {
	stores repository.StoreRepository
	authz  *Authorizer
}

// NewStorePermissions construye el caso de uso.
func NewStorePermissions(stores repository.StoreRepository, authz *Authorizer) *StorePermissions {
	return &StorePermissions{stores: stores, authz: authz}
}

// GetAll devuelve el mapa completo de permisos de la tienda.
func (s *StorePermissions) GetAll(ctx context.Context, storeID string) (map[string]bool, error) {
	if err := s.ensureStore(storeID); err != nil {
		return nil, err
	}
	return s.authz.GetAll(ctx, storeID)
}

// SetOne hace upsert de una llave de la tienda.
func (s *StorePermissions) SetOne(ctx context.Context, storeID, menuKey string, enabled bool) (*dto.PermissionResponse, error) {
	if err := s.ensureStore(storeID); err != nil {
		return nil, err
	}
	return s.authz.SetOne(ctx, storeID, menuKey, enabled)
}

// SetBulk aplica un lote de permisos de la tienda.
func (s *StorePermissions) SetBulk(ctx context.Context, storeID string, raw map[string]any) (map[string]bool, error) {
	if err := s.ensureStore(storeID); err != nil {
		return nil, err
	}
	return s.authz.SetBulk(ctx, storeID, raw)
}

func (s *StorePermissions) ensureStore(storeID string) error {
	store, err := s.stores.GetByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return nil
}
