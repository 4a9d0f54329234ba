package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/billing"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeFormatRepo struct {
	byID              map[string]*entity.InvoiceFormat
	storeAssignments  map[string]string // storeID -> formatID
	vendorAssignments map[string]string // vendorID -> formatID
	billCounts        map[string]int    // formatID -> facturas que lo referencian
}

func newFakeFormatRepo() *fakeFormatRepo {
	return &fakeFormatRepo{
		byID:              map[string]*entity.InvoiceFormat{},
		storeAssignments:  map[string]string{},
		vendorAssignments: map[string]string{},
		billCounts:        map[string]int{},
	}
}

func (f *fakeFormatRepo) Create(fmt *entity.InvoiceFormat) error {
	cp := *fmt
	f.byID[fmt.ID] = &cp
	return nil
}

func (f *fakeFormatRepo) GetByID(id string) (*entity.InvoiceFormat, error) {
	fmt, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *fmt
	return &cp, nil
}

func (f *fakeFormatRepo) GetByName(name string) (*entity.InvoiceFormat, error) {
	for _, fmt := range f.byID {
		if fmt.Name == name {
			cp := *fmt
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeFormatRepo) List() ([]*entity.InvoiceFormat, error) {
	var out []*entity.InvoiceFormat
	for _, fmt := range f.byID {
		cp := *fmt
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeFormatRepo) Update(fmt *entity.InvoiceFormat) error {
	cp := *fmt
	f.byID[fmt.ID] = &cp
	return nil
}

func (f *fakeFormatRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeFormatRepo) GetDefault() (*entity.InvoiceFormat, error) {
	for _, fmt := range f.byID {
		if fmt.IsDefault {
			cp := *fmt
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeFormatRepo) ClearDefault() error {
	for _, fmt := range f.byID {
		fmt.IsDefault = false
	}
	return nil
}

func (f *fakeFormatRepo) MarkDefault(id string) error {
	if fmt, ok := f.byID[id]; ok {
		fmt.IsDefault = true
	}
	return nil
}

func (f *fakeFormatRepo) UsageCounts(formatID string) (int, int, int, error) {
	stores, vendors := 0, 0
	for _, fid := range f.storeAssignments {
		if fid == formatID {
			stores++
		}
	}
	for _, fid := range f.vendorAssignments {
		if fid == formatID {
			vendors++
		}
	}
	return stores, vendors, f.billCounts[formatID], nil
}

func (f *fakeFormatRepo) AssignToStore(storeID, formatID string) error {
	f.storeAssignments[storeID] = formatID
	return nil
}

func (f *fakeFormatRepo) AssignToVendor(vendorID, formatID string) error {
	f.vendorAssignments[vendorID] = formatID
	return nil
}

func (f *fakeFormatRepo) GetStoreAssignment(storeID string) (*entity.StoreInvoiceFormat, error) {
	fid, ok := f.storeAssignments[storeID]
	if !ok {
		return nil, nil
	}
	return &entity.StoreInvoiceFormat{StoreID: storeID, FormatID: fid}, nil
}

func (f *fakeFormatRepo) GetVendorAssignment(vendorID string) (*entity.VendorInvoiceFormat, error) {
	fid, ok := f.vendorAssignments[vendorID]
	if !ok {
		return nil, nil
	}
	return &entity.VendorInvoiceFormat{VendorID: vendorID, FormatID: fid}, nil
}

func (f *fakeFormatRepo) ListStoreAssignments() ([]entity.StoreInvoiceFormat, error) {
	var out []entity.StoreInvoiceFormat
	for sid, fid := range f.storeAssignments {
		out = append(out, entity.StoreInvoiceFormat{StoreID: sid, FormatID: fid})
	}
	return out, nil
}

func (f *fakeFormatRepo) ListVendorAssignments() ([]entity.VendorInvoiceFormat, error) {
	var out []entity.VendorInvoiceFormat
	for vid, fid := range f.vendorAssignments {
		out = append(out, entity.VendorInvoiceFormat{VendorID: vid, FormatID: fid})
	}
	return out, nil
}

type fakeStoreRepo struct {
	byID map[string]*entity.Store
}

func (f *fakeStoreRepo) GetByID(id string) (*entity.Store, error) { return f.byID[id], nil }

type fakeVendorRepo struct {
	byID map[string]*entity.Vendor
}

func (f *fakeVendorRepo) GetByID(id string) (*entity.Vendor, error) { return f.byID[id], nil }

type fakeFormatTxRunner struct {
	formats *fakeFormatRepo
}

func (f *fakeFormatTxRunner) RunFormats(ctx context.Context, fn func(repository.InvoiceFormatRepository) error) error {
	return fn(f.formats)
}

func newFormatUseCase() (*billing.InvoiceFormatUseCase, *fakeFormatRepo, *fakeStoreRepo, *fakeVendorRepo) {
	formats := newFakeFormatRepo()
	stores := &fakeStoreRepo{byID: map[string]*entity.Store{"store-1": {ID: "store-1", StoreName: "Tienda Uno"}}}
	vendors := &fakeVendorRepo{byID: map[string]*entity.Vendor{"vendor-1": {ID: "vendor-1", Name: "Vendor Uno"}}}
	uc := billing.NewInvoiceFormatUseCase(formats, stores, vendors, &fakeFormatTxRunner{formats: formats})
	return uc, formats, stores, vendors
}

func createFormat(t *testing.T, uc *billing.InvoiceFormatUseCase, name string, isDefault bool) *dto.InvoiceFormatResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), dto.CreateInvoiceFormatRequest{
		Name:      name,
		Template:  "<body>{{.Total}}</body>",
		IsDefault: isDefault,
	})
	require.NoError(t, err)
	return resp
}

func countDefaults(f *fakeFormatRepo) int {
	n := 0
	for _, fmt := range f.byID {
		if fmt.IsDefault {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateFormato_CamposObligatorios(t *testing.T) {
	uc, _, _, _ := newFormatUseCase()

	_, err := uc.Create(context.Background(), dto.CreateInvoiceFormatRequest{Description: "x"})

	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"name", "template"}, ve.Fields)
}

func TestCreateFormato_NombreDuplicado_Conflicto(t *testing.T) {
	uc, _, _, _ := newFormatUseCase()
	createFormat(t, uc, "Clásico", false)

	_, err := uc.Create(context.Background(), dto.CreateInvoiceFormatRequest{
		Name: "Clásico", Template: "<body/>",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateFormatoComoDefault_DesplazaAlAnterior(t *testing.T) {
	uc, formats, _, _ := newFormatUseCase()
	old := createFormat(t, uc, "Viejo", true)

	nuevo := createFormat(t, uc, "Nuevo", true)

	assert.Equal(t, 1, countDefaults(formats), "a lo sumo un default")
	assert.True(t, formats.byID[nuevo.ID].IsDefault)
	assert.False(t, formats.byID[old.ID].IsDefault)
}

func TestUpdateFormato_TemplateVacio_Validacion(t *testing.T) {
	uc, _, _, _ := newFormatUseCase()
	created := createFormat(t, uc, "Clásico", false)

	empty := "   "
	_, err := uc.Update(context.Background(), created.ID, dto.UpdateInvoiceFormatRequest{Template: &empty})

	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "template")
}

func TestUpdateFormato_MarcarComoDefault_DesplazaAlAnterior(t *testing.T) {
	uc, formats, _, _ := newFormatUseCase()
	old := createFormat(t, uc, "Viejo", true)
	created := createFormat(t, uc, "Nuevo", false)

	isDefault := true
	resp, err := uc.Update(context.Background(), created.ID, dto.UpdateInvoiceFormatRequest{IsDefault: &isDefault})

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, 1, countDefaults(formats))
	assert.False(t, formats.byID[old.ID].IsDefault)
}

func TestSetDefault_Inexistente_NotFound(t *testing.T) {
	uc, _, _, _ := newFormatUseCase()

	err := uc.SetDefault(context.Background(), "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetDefault_ClearThenSet(t *testing.T) {
	uc, formats, _, _ := newFormatUseCase()
	a := createFormat(t, uc, "A", true)
	b := createFormat(t, uc, "B", false)

	require.NoError(t, uc.SetDefault(context.Background(), b.ID))

	assert.Equal(t, 1, countDefaults(formats))
	assert.True(t, formats.byID[b.ID].IsDefault)
	assert.False(t, formats.byID[a.ID].IsDefault)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete: guard referencial
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteFormato_Default_Bloqueado(t *testing.T) {
	uc, _, _, _ := newFormatUseCase()
	created := createFormat(t, uc, "Default", true)

	err := uc.Delete(context.Background(), created.ID)

	rbe, ok := domain.AsReferentialBlock(err)
	require.True(t, ok)
	assert.True(t, rbe.IsDefault)
}

func TestDeleteFormato_EnUso_BloqueadoConConteos(t *testing.T) {
	uc, formats, _, _ := newFormatUseCase()
	created := createFormat(t, uc, "Usado", false)
	require.NoError(t, uc.AssignToStore(context.Background(), "store-1", created.ID))
	require.NoError(t, uc.AssignToVendor(context.Background(), "vendor-1", created.ID))
	formats.billCounts[created.ID] = 3

	err := uc.Delete(context.Background(), created.ID)

	rbe, ok := domain.AsReferentialBlock(err)
	require.True(t, ok)
	assert.False(t, rbe.IsDefault)
	assert.Equal(t, 1, rbe.StoreCount)
	assert.Equal(t, 1, rbe.VendorCount)
	assert.Equal(t, 3, rbe.BillCount)
	_, stillThere := formats.byID[created.ID]
	assert.True(t, stillThere, "un borrado bloqueado no elimina nada")
}

func TestDeleteFormato_SinReferencias_Elimina(t *testing.T) {
	uc, formats, _, _ := newFormatUseCase()
	created := createFormat(t, uc, "Libre", false)

	err := uc.Delete(context.Background(), created.ID)

	require.NoError(t, err)
	_, exists := formats.byID[created.ID]
	assert.False(t, exists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAssignToStore_SobrescribeLaAnterior(t *testing.T) {
	uc, formats, _, _ := newFormatUseCase()
	a := createFormat(t, uc, "A", false)
	b := createFormat(t, uc, "B", false)

	require.NoError(t, uc.AssignToStore(context.Background(), "store-1", a.ID))
	require.NoError(t, uc.AssignToStore(context.Background(), "store-1", b.ID))

	assert.Equal(t, b.ID, formats.storeAssignments["store-1"], "una sola asignación activa por tienda")
}

func TestAssignToStore_TiendaOFormatoInexistente_NotFound(t *testing.T) {
	uc, _, _, _ := newFormatUseCase()
	created := createFormat(t, uc, "A", false)

	err := uc.AssignToStore(context.Background(), "no-existe", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.AssignToStore(context.Background(), "store-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStoreFormat_SinAsignacion_NilSinError(t *testing.T) {
	uc, _, _, _ := newFormatUseCase()

	resp, err := uc.GetStoreFormat(context.Background(), "store-1")

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestListAssignments_DevuelveAmbosLados(t *testing.T) {
	uc, _, _, _ := newFormatUseCase()
	a := createFormat(t, uc, "A", false)
	require.NoError(t, uc.AssignToStore(context.Background(), "store-1", a.ID))
	require.NoError(t, uc.AssignToVendor(context.Background(), "vendor-1", a.ID))

	resp, err := uc.ListAssignments(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Stores, 1)
	require.Len(t, resp.Vendors, 1)
	assert.Equal(t, a.ID, resp.Stores[0].FormatID)
	assert.Equal(t, "vendor-1", resp.Vendors[0].VendorID)
}
