package subuser

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UseCase casos de uso del ciclo de vida de sub-usuarios: alta por un tenant,
// aprobación/rechazo por un admin y CRUD con scoping por tenant.
//
// Regla de scoping compartida por todas las operaciones: un caller vendor o
// tienda solo ve y muta sub-usuarios de su propio tenant; un sub-usuario fuera
// de ese alcance se trata como inexistente (404, no 403) para no filtrar
// existencia entre tenants. El admin no tiene restricción.
type UseCase struct {
	txRunner TxRunner
	subUsers repository.SubUserRepository
	registry entity.MenuRegistry
}

// NewUseCase construye el caso de uso. El registry se usa para sembrar una
// fila de permiso por llave al crear el sub-usuario.
func NewUseCase(txRunner TxRunner, subUsers repository.SubUserRepository, registry entity.MenuRegistry) *UseCase {
	return &UseCase{txRunner: txRunner, subUsers: subUsers, registry: registry}
}

// Create da de alta un sub-usuario en estado pending bajo el tenant del caller.
// En la misma transacción siembra una fila de permiso por cada llave del
// catálogo, todas enabled=true: el sub-usuario recién creado queda totalmente
// permisado aunque no pueda autenticarse hasta ser aprobado.
func (uc *UseCase) Create(ctx context.Context, ident domain.Identity, in dto.CreateSubUserRequest) (*dto.SubUserResponse, error) {
	if err := requireTenantOrAdmin(ident); err != nil {
		return nil, err
	}

	var missing []string
	if strings.TrimSpace(in.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(in.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	taken, err := uc.subUsers.EmailTaken(email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	su := &entity.SubUser{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Status:       entity.SubUserStatusPending,
		VendorID:     ident.VendorID,
		StoreID:      ident.StoreID,
		CreatedBy:    ident.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunSubUser(ctx, func(subUsers repository.SubUserRepository, perms repository.MenuPermissionRepository) error {
		if err := subUsers.Create(su); err != nil {
			return err
		}
		for _, key := range uc.registry.Keys {
			if err := perms.Upsert(su.ID, key, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(su), nil
}

// Get obtiene un sub-usuario con scoping por tenant.
func (uc *UseCase) Get(ctx context.Context, ident domain.Identity, id string) (*dto.SubUserResponse, error) {
	su, err := uc.scopedGet(ident, id)
	if err != nil {
		return nil, err
	}
	return toResponse(su), nil
}

// List lista los sub-usuarios del tenant del caller. Es un endpoint solo de
// tenant: un admin sin tenant recibe una lista vacía (el listado global del
// admin es ListPending/ListByStatus).
func (uc *UseCase) List(ctx context.Context, ident domain.Identity) (*dto.SubUserListResponse, error) {
	if err := requireTenantOrAdmin(ident); err != nil {
		return nil, err
	}
	if !ident.IsTenant() {
		return &dto.SubUserListResponse{Items: []dto.SubUserResponse{}}, nil
	}
	list, err := uc.subUsers.ListByTenant(ident.VendorID, ident.StoreID)
	if err != nil {
		return nil, err
	}
	return toListResponse(list), nil
}

// Update modifica parcialmente un sub-usuario del tenant del caller. Si el
// email cambia, se revalida la unicidad excluyendo al propio sub-usuario.
func (uc *UseCase) Update(ctx context.Context, ident domain.Identity, id string, in dto.UpdateSubUserRequest) (*dto.SubUserResponse, error) {
	su, err := uc.scopedGet(ident, id)
	if err != nil {
		return nil, err
	}

	var invalid []string
	if in.FirstName != nil && strings.TrimSpace(*in.FirstName) == "" {
		invalid = append(invalid, "firstName")
	}
	if in.LastName != nil && strings.TrimSpace(*in.LastName) == "" {
		invalid = append(invalid, "lastName")
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) == "" {
		invalid = append(invalid, "email")
	}
	if len(invalid) > 0 {
		return nil, domain.NewValidationError(invalid...)
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != su.Email {
			taken, err := uc.subUsers.EmailTaken(email, su.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrEmailAlreadyExists
			}
			su.Email = email
		}
	}
	if in.FirstName != nil {
		su.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		su.LastName = *in.LastName
	}
	if in.Phone != nil {
		su.Phone = *in.Phone
	}
	su.UpdatedAt = time.Now()

	if err := uc.subUsers.Update(su); err != nil {
		return nil, err
	}
	return toResponse(su), nil
}

// Delete elimina un sub-usuario del tenant del caller. Las filas de permiso se
// borran primero, en la misma transacción, para no dejar filas huérfanas.
func (uc *UseCase) Delete(ctx context.Context, ident domain.Identity, id string) error {
	su, err := uc.scopedGet(ident, id)
	if err != nil {
		return err
	}
	return uc.txRunner.RunSubUser(ctx, func(subUsers repository.SubUserRepository, perms repository.MenuPermissionRepository) error {
		if err := perms.DeleteBySubject(su.ID); err != nil {
			return err
		}
		return subUsers.Delete(su.ID)
	})
}

// ListPending devuelve todos los sub-usuarios pendientes con los nombres del
// creador y del tenant resueltos. Solo admin (lo garantiza el router).
func (uc *UseCase) ListPending(ctx context.Context) ([]dto.PendingSubUserResponse, error) {
	list, err := uc.subUsers.ListPending()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PendingSubUserResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.PendingSubUserResponse{
			SubUserResponse: *toResponse(&p.SubUser),
			CreatorName:     p.CreatorName,
			VendorName:      p.VendorName,
			StoreName:       p.StoreName,
		})
	}
	return items, nil
}

// Approve aprueba un sub-usuario pendiente. El UPDATE condicionado a
// status='pending' es la señal de idempotencia: si no afecta filas se relee el
// estado para distinguir "ya aprobado" de "rechazado" (el rechazo es terminal,
// aprobar un rechazado está prohibido).
func (uc *UseCase) Approve(ctx context.Context, adminID, id string) (*dto.SubUserResponse, error) {
	su, err := uc.subUsers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if su == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.subUsers.ApproveIfPending(id, adminID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		fresh, err := uc.subUsers.GetByID(id)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, domain.ErrNotFound
		}
		if fresh.Status == entity.SubUserStatusRejected {
			return nil, domain.ErrRejectedIsFinal
		}
		return nil, domain.ErrAlreadyApproved
	}
	updated, err := uc.subUsers.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// Reject rechaza un sub-usuario. El motivo es obligatorio. Rechazar un
// aprobado está permitido (degradación); re-rechazar no.
func (uc *UseCase) Reject(ctx context.Context, adminID, id, reason string) (*dto.SubUserResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.NewValidationError("reason")
	}
	su, err := uc.subUsers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if su == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.subUsers.RejectIfNotRejected(id, adminID, reason, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyRejected
	}
	updated, err := uc.subUsers.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// ListByStatus lista sub-usuarios filtrando por estado. El filtro por defecto
// es "approved" (de ahí el nombre del endpoint original), pero el query
// `status` permite consultar cualquier estado por la misma ruta. Tenant-scoped
// salvo admin.
func (uc *UseCase) ListByStatus(ctx context.Context, ident domain.Identity, status string) (*dto.SubUserListResponse, error) {
	if err := requireTenantOrAdmin(ident); err != nil {
		return nil, err
	}
	if status == "" {
		status = entity.SubUserStatusApproved
	}
	switch status {
	case entity.SubUserStatusPending, entity.SubUserStatusApproved, entity.SubUserStatusRejected:
	default:
		return nil, domain.NewValidationError("status")
	}
	vendorID, storeID := "", ""
	if !ident.IsAdmin() {
		vendorID, storeID = ident.VendorID, ident.StoreID
	}
	list, err := uc.subUsers.ListByStatus(vendorID, storeID, status)
	if err != nil {
		return nil, err
	}
	return toListResponse(list), nil
}

// Summary devuelve los conteos del dashboard. Un storeId/vendorId explícito en
// el query requiere ser admin o dueño del id consultado.
func (uc *UseCase) Summary(ctx context.Context, ident domain.Identity, queryStoreID, queryVendorID string) (*dto.SubUserSummaryResponse, error) {
	if err := requireTenantOrAdmin(ident); err != nil {
		return nil, err
	}

	vendorID, storeID := ident.VendorID, ident.StoreID
	if queryVendorID != "" {
		if !ident.IsAdmin() && queryVendorID != ident.VendorID {
			return nil, domain.ErrAccessDenied
		}
		vendorID, storeID = queryVendorID, ""
	} else if queryStoreID != "" {
		if !ident.IsAdmin() && queryStoreID != ident.StoreID {
			return nil, domain.ErrAccessDenied
		}
		vendorID, storeID = "", queryStoreID
	}

	s, err := uc.subUsers.Summary(vendorID, storeID)
	if err != nil {
		return nil, err
	}
	return &dto.SubUserSummaryResponse{
		Total:    s.Total,
		Pending:  s.Pending,
		Approved: s.Approved,
		Rejected: s.Rejected,
		Recent: dto.SubUserSummaryWindows{
			Created:  s.RecentCreated,
			Approved: s.RecentApproved,
		},
	}, nil
}

// scopedGet busca por id aplicando la regla de scoping: fuera de alcance se
// reporta como no encontrado.
func (uc *UseCase) scopedGet(ident domain.Identity, id string) (*entity.SubUser, error) {
	if err := requireTenantOrAdmin(ident); err != nil {
		return nil, err
	}
	su, err := uc.subUsers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if su == nil {
		return nil, domain.ErrNotFound
	}
	if ident.IsAdmin() {
		return su, nil
	}
	switch ident.Role {
	case domain.RoleVendor:
		if su.VendorID == "" || su.VendorID != ident.VendorID {
			return nil, domain.ErrNotFound
		}
	case domain.RoleStore:
		if su.StoreID == "" || su.StoreID != ident.StoreID {
			return nil, domain.ErrNotFound
		}
	}
	return su, nil
}

// requireTenantOrAdmin valida el rol del caller: admin pasa siempre; vendor y
// tienda necesitan identidad de tenant; cualquier otro rol es denegado.
func requireTenantOrAdmin(ident domain.Identity) error {
	if ident.IsAdmin() {
		return nil
	}
	if (ident.Role == domain.RoleVendor || ident.Role == domain.RoleStore) && ident.TenantID() != "" {
		return nil
	}
	return domain.ErrAccessDenied
}

func toResponse(su *entity.SubUser) *dto.SubUserResponse {
	if su == nil {
		return nil
	}
	return &dto.SubUserResponse{
		ID:              su.ID,
		FirstName:       su.FirstName,
		LastName:        su.LastName,
		Email:           su.Email,
		Phone:           su.Phone,
		Status:          su.Status,
		VendorID:        su.VendorID,
		StoreID:         su.StoreID,
		CreatedBy:       su.CreatedBy,
		ApprovedBy:      su.ApprovedBy,
		RejectedBy:      su.RejectedBy,
		RejectionReason: su.RejectionReason,
		ApprovedAt:      su.ApprovedAt,
		RejectedAt:      su.RejectedAt,
		CreatedAt:       su.CreatedAt,
		UpdatedAt:       su.UpdatedAt,
	}
}

func toListResponse(list []*entity.SubUser) *dto.SubUserListResponse {
	items := make([]dto.SubUserResponse, 0, len(list))
	for _, su := range list {
		items = append(items, *toResponse(su))
	}
	return &dto.SubUserListResponse{Items: items}
}
