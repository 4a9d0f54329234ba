package permission_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/permission"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePermRepo struct {
	rows map[string]map[string]bool
}

func newFakePermRepo() *fakePermRepo {
	return &fakePermRepo{rows: map[string]map[string]bool{}}
}

func (f *fakePermRepo) ListBySubject(subjectID string) ([]entity.MenuPermission, error) {
	var out []entity.MenuPermission
	for k, v := range f.rows[subjectID] {
		out = append(out, entity.MenuPermission{SubjectID: subjectID, MenuKey: k, Enabled: v})
	}
	return out, nil
}

func (f *fakePermRepo) Upsert(subjectID, menuKey string, enabled bool) error {
	if f.rows[subjectID] == nil {
		f.rows[subjectID] = map[string]bool{}
	}
	f.rows[subjectID][menuKey] = enabled
	return nil
}

func (f *fakePermRepo) DeleteBySubject(subjectID string) error {
	delete(f.rows, subjectID)
	return nil
}

type fakeBulkTxRunner struct {
	perms *fakePermRepo
}

func (f *fakeBulkTxRunner) RunPermissions(ctx context.Context, fn func(repository.MenuPermissionRepository) error) error {
	return fn(f.perms)
}

// noopCache descarta todo; el autorizador debe funcionar igual sin cache.
type noopCache struct{}

func (noopCache) GetMap(context.Context, string) (map[string]bool, bool) { return nil, false }
func (noopCache) SetMap(context.Context, string, map[string]bool)       {}
func (noopCache) Invalidate(context.Context, string)                    {}

type fakeSubUserRepo struct {
	byID map[string]*entity.SubUser
}

func (f *fakeSubUserRepo) Create(*entity.SubUser) error { return nil }
func (f *fakeSubUserRepo) GetByID(id string) (*entity.SubUser, error) {
	return f.byID[id], nil
}
func (f *fakeSubUserRepo) GetByEmail(string) (*entity.SubUser, error) { return nil, nil }
func (f *fakeSubUserRepo) ListByTenant(string, string) ([]*entity.SubUser, error) {
	return nil, nil
}
func (f *fakeSubUserRepo) ListByStatus(string, string, string) ([]*entity.SubUser, error) {
	return nil, nil
}
func (f *fakeSubUserRepo) ListPending() ([]*entity.PendingSubUser, error) { return nil, nil }
func (f *fakeSubUserRepo) Update(*entity.SubUser) error                   { return nil }
func (f *fakeSubUserRepo) Delete(string) error                            { return nil }
func (f *fakeSubUserRepo) EmailTaken(string, string) (bool, error)        { return false, nil }
func (f *fakeSubUserRepo) ApproveIfPending(string, string, time.Time) (bool, error) {
	return false, nil
}
func (f *fakeSubUserRepo) RejectIfNotRejected(string, string, string, time.Time) (bool, error) {
	return false, nil
}
func (f *fakeSubUserRepo) Summary(string, string) (*entity.SubUserSummary, error) {
	return &entity.SubUserSummary{}, nil
}

type fakeStoreRepo struct {
	byID map[string]*entity.Store
}

func (f *fakeStoreRepo) GetByID(id string) (*entity.Store, error) { return f.byID[id], nil }

func newSubUserAuthorizer() (*permission.Authorizer, *fakePermRepo) {
	perms := newFakePermRepo()
	a := permission.NewAuthorizer(perms, entity.SubUserMenuRegistry(), &fakeBulkTxRunner{perms: perms}, noopCache{}, "perms:subuser:")
	return a, perms
}

func newStoreAuthorizer() (*permission.Authorizer, *fakePermRepo) {
	perms := newFakePermRepo()
	a := permission.NewAuthorizer(perms, entity.StoreMenuRegistry(), &fakeBulkTxRunner{perms: perms}, noopCache{}, "perms:store:")
	return a, perms
}

// ──────────────────────────────────────────────────────────────────────────────
// GetAll: mapa completo y asimetría de defaults
// ──────────────────────────────────────────────────────────────────────────────

func TestGetAll_SubUsuarioSinFilas_TodoFalse(t *testing.T) {
	authz, _ := newSubUserAuthorizer()

	m, err := authz.GetAll(context.Background(), "su-1")

	require.NoError(t, err)
	require.Len(t, m, len(entity.ValidMenuKeys), "el mapa siempre es completo")
	for key, enabled := range m {
		assert.False(t, enabled, "la llave %s de sub-usuario debe default a false", key)
	}
}

func TestGetAll_TiendaSinFilas_TodoTrue(t *testing.T) {
	authz, _ := newStoreAuthorizer()

	m, err := authz.GetAll(context.Background(), "store-1")

	require.NoError(t, err)
	require.Len(t, m, len(entity.ValidMenuKeys))
	for key, enabled := range m {
		assert.True(t, enabled, "la llave %s de tienda debe default a true", key)
	}
}

func TestGetAll_FilaPersistidaPisaElDefault(t *testing.T) {
	authz, perms := newStoreAuthorizer()
	require.NoError(t, perms.Upsert("store-1", "Billing", false))

	m, err := authz.GetAll(context.Background(), "store-1")

	require.NoError(t, err)
	assert.False(t, m["Billing"])
	assert.True(t, m["Orders"], "las llaves sin fila conservan el default")
}

// ──────────────────────────────────────────────────────────────────────────────
// SetOne
// ──────────────────────────────────────────────────────────────────────────────

func TestSetOne_LlaveValida_Upsert(t *testing.T) {
	authz, perms := newSubUserAuthorizer()

	resp, err := authz.SetOne(context.Background(), "su-1", "Products", true)

	require.NoError(t, err)
	assert.Equal(t, "Products", resp.MenuKey)
	assert.True(t, resp.Enabled)
	assert.True(t, perms.rows["su-1"]["Products"])

	// Segundo upsert sobre la misma llave no es error.
	resp, err = authz.SetOne(context.Background(), "su-1", "Products", false)
	require.NoError(t, err)
	assert.False(t, resp.Enabled)
	assert.False(t, perms.rows["su-1"]["Products"])
}

func TestSetOne_LlaveFueraDeCatalogo_Validacion(t *testing.T) {
	authz, perms := newSubUserAuthorizer()

	_, err := authz.SetOne(context.Background(), "su-1", "Reportes", true)

	_, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, err.Error(), "Reportes")
	assert.Empty(t, perms.rows["su-1"])
}

// ──────────────────────────────────────────────────────────────────────────────
// SetBulk: validación exhaustiva y aplicación transaccional
// ──────────────────────────────────────────────────────────────────────────────

func TestSetBulk_AplicaYDevuelveMapaCompleto(t *testing.T) {
	authz, _ := newSubUserAuthorizer()

	m, err := authz.SetBulk(context.Background(), "su-1", map[string]any{
		"Products": true,
		"Orders":   true,
		"Billing":  false,
	})

	require.NoError(t, err)
	require.Len(t, m, len(entity.ValidMenuKeys), "la respuesta incluye también las llaves no tocadas")
	assert.True(t, m["Products"])
	assert.True(t, m["Orders"])
	assert.False(t, m["Billing"])
	assert.False(t, m["Settings"], "llave no tocada conserva el default de sub-usuario")
}

func TestSetBulk_Vacio_Validacion(t *testing.T) {
	authz, _ := newSubUserAuthorizer()

	_, err := authz.SetBulk(context.Background(), "su-1", map[string]any{})

	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"permissions"}, ve.Fields)
}

func TestSetBulk_ErroresAcumulados_NadaSeAplica(t *testing.T) {
	authz, perms := newSubUserAuthorizer()

	_, err := authz.SetBulk(context.Background(), "su-1", map[string]any{
		"Products": true,     // válida, pero el lote entero debe rechazarse
		"Zeta":     true,     // llave fuera de catálogo
		"Alfa":     false,    // llave fuera de catálogo
		"Orders":   "sí",     // valor no booleano
		"Billing":  float64(1), // valor no booleano (número JSON)
	})

	ve, ok := domain.AsValidation(err)
	require.True(t, ok, "debe ser ValidationError")
	assert.Equal(t, []string{
		"llave inválida: Alfa",
		"llave inválida: Zeta",
		"valor no booleano: Billing",
		"valor no booleano: Orders",
	}, ve.Fields, "todas las llaves y valores inválidos, ordenados")
	assert.Empty(t, perms.rows["su-1"], "un lote inválido no aplica ningún upsert")
}

// ──────────────────────────────────────────────────────────────────────────────
// Puerta de propiedad de SubUserPermissions
// ──────────────────────────────────────────────────────────────────────────────

func subUserPermsFixture() (*permission.SubUserPermissions, *fakeSubUserRepo) {
	repo := &fakeSubUserRepo{byID: map[string]*entity.SubUser{
		"su-1": {ID: "su-1", VendorID: "vendor-1", Status: entity.SubUserStatusApproved},
		"su-2": {ID: "su-2", StoreID: "store-1", Status: entity.SubUserStatusPending},
	}}
	authz, _ := newSubUserAuthorizer()
	return permission.NewSubUserPermissions(repo, authz), repo
}

func TestSubUserPermissions_Inexistente_NotFound(t *testing.T) {
	uc, _ := subUserPermsFixture()
	admin := domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin}

	_, err := uc.GetAll(context.Background(), admin, "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubUserPermissions_VendorAjeno_Denegado(t *testing.T) {
	uc, _ := subUserPermsFixture()
	otro := domain.Identity{UserID: "u-2", Role: domain.RoleVendor, VendorID: "vendor-2"}

	// El id existe y el caller lo sabe: se deniega en vez de ocultar.
	_, err := uc.GetAll(context.Background(), otro, "su-1")

	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestSubUserPermissions_DuenoYAdmin_Acceden(t *testing.T) {
	uc, _ := subUserPermsFixture()
	owner := domain.Identity{UserID: "u-1", Role: domain.RoleVendor, VendorID: "vendor-1"}
	admin := domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin}

	_, err := uc.GetAll(context.Background(), owner, "su-1")
	assert.NoError(t, err)

	_, err = uc.SetOne(context.Background(), admin, "su-2", "Orders", true)
	assert.NoError(t, err)
}

func TestSubUserPermissions_TiendaSobreSubUsuarioDeVendor_Denegado(t *testing.T) {
	uc, _ := subUserPermsFixture()
	store := domain.Identity{UserID: "u-3", Role: domain.RoleStore, StoreID: "store-1"}

	_, err := uc.GetAll(context.Background(), store, "su-1")

	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

// ──────────────────────────────────────────────────────────────────────────────
// StorePermissions
// ──────────────────────────────────────────────────────────────────────────────

func TestStorePermissions_TiendaInexistente_NotFound(t *testing.T) {
	authz, _ := newStoreAuthorizer()
	uc := permission.NewStorePermissions(&fakeStoreRepo{byID: map[string]*entity.Store{}}, authz)

	_, err := uc.GetAll(context.Background(), "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStorePermissions_TiendaExistente_MapaConDefaultTrue(t *testing.T) {
	authz, _ := newStoreAuthorizer()
	stores := &fakeStoreRepo{byID: map[string]*entity.Store{"store-1": {ID: "store-1"}}}
	uc := permission.NewStorePermissions(stores, authz)

	m, err := uc.GetAll(context.Background(), "store-1")

	require.NoError(t, err)
	assert.True(t, m["Settings"])
}
