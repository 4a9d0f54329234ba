package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/billing"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

type fakeBillRepo struct {
	byID map[string]*entity.Bill
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{byID: map[string]*entity.Bill{}}
}

func (f *fakeBillRepo) Create(b *entity.Bill) error {
	cp := *b
	f.byID[b.ID] = &cp
	return nil
}

func (f *fakeBillRepo) GetByID(id string) (*entity.Bill, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBillRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range f.byID {
		if b.StoreID == storeID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error)       { return f.byID[id], nil }
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) Create(*entity.User) error                     { return nil }
func (f *fakeUserRepo) Update(*entity.User) error                     { return nil }

type billFixture struct {
	uc      *billing.BillUseCase
	bills   *fakeBillRepo
	formats *fakeFormatRepo
	users   *fakeUserRepo
}

func newBillFixture() *billFixture {
	bills := newFakeBillRepo()
	formats := newFakeFormatRepo()
	stores := &fakeStoreRepo{byID: map[string]*entity.Store{"store-1": {ID: "store-1", StoreName: "Tienda Uno"}}}
	users := &fakeUserRepo{byID: map[string]*entity.User{}}
	return &billFixture{
		uc:      billing.NewBillUseCase(bills, formats, stores, users),
		bills:   bills,
		formats: formats,
		users:   users,
	}
}

func (fx *billFixture) addFormat(id string, isDefault bool) {
	fx.formats.byID[id] = &entity.InvoiceFormat{ID: id, Name: "fmt-" + id, Template: "<body/>", IsDefault: isDefault}
}

func validBillRequest() dto.CreateBillRequest {
	return dto.CreateBillRequest{
		StoreID: "store-1",
		Products: []dto.BillProductDTO{
			{Name: "Café 500g", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(8.50), Total: decimal.NewFromFloat(17.00)},
		},
		Subtotal: decimal.NewFromFloat(17.00),
		Total:    decimal.NewFromFloat(17.00),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearFactura_CamposObligatorios(t *testing.T) {
	fx := newBillFixture()

	_, err := fx.uc.Create(context.Background(), dto.CreateBillRequest{})

	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"storeId", "products"}, ve.Fields)
}

func TestCrearFactura_TiendaInexistente_NotFound(t *testing.T) {
	fx := newBillFixture()
	req := validBillRequest()
	req.StoreID = "no-existe"

	_, err := fx.uc.Create(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrearFactura_TipoDesconocido_CaeAInvoice(t *testing.T) {
	fx := newBillFixture()
	req := validBillRequest()
	req.InvoiceType = "Recibo"

	resp, err := fx.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceTypeInvoice, resp.InvoiceType)
}

func TestCrearFactura_EmailDeClienteEnMinusculas(t *testing.T) {
	fx := newBillFixture()
	req := validBillRequest()
	req.CustomerEmail = "  Cliente@Example.COM "

	resp, err := fx.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "cliente@example.com", resp.CustomerEmail)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cascada de resolución de formato
// ──────────────────────────────────────────────────────────────────────────────

func TestResolucion_FormatoExplicito_Gana(t *testing.T) {
	fx := newBillFixture()
	fx.addFormat("fmt-explicito", false)
	fx.addFormat("fmt-default", true)
	fx.formats.storeAssignments["store-1"] = "fmt-default"
	req := validBillRequest()
	req.InvoiceFormatID = "fmt-explicito"

	resp, err := fx.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "fmt-explicito", resp.InvoiceFormatID)
}

func TestResolucion_FormatoExplicitoInexistente_Validacion(t *testing.T) {
	fx := newBillFixture()
	fx.addFormat("fmt-default", true)
	req := validBillRequest()
	req.InvoiceFormatID = "no-existe"

	// Un id explícito inválido es un error del caller, no cae al siguiente
	// paso de la cascada.
	_, err := fx.uc.Create(context.Background(), req)

	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"invoiceFormatId"}, ve.Fields)
	assert.Empty(t, fx.bills.byID, "la factura no debe crearse")
}

func TestResolucion_AsignacionDeTienda(t *testing.T) {
	fx := newBillFixture()
	fx.addFormat("fmt-tienda", false)
	fx.addFormat("fmt-default", true)
	fx.formats.storeAssignments["store-1"] = "fmt-tienda"

	resp, err := fx.uc.Create(context.Background(), validBillRequest())

	require.NoError(t, err)
	assert.Equal(t, "fmt-tienda", resp.InvoiceFormatID, "la asignación de tienda precede al default")
}

func TestResolucion_AsignacionDeVendorViaUsuario(t *testing.T) {
	fx := newBillFixture()
	fx.addFormat("fmt-vendor", false)
	fx.addFormat("fmt-default", true)
	fx.formats.vendorAssignments["vendor-1"] = "fmt-vendor"
	fx.users.byID["u-1"] = &entity.User{ID: "u-1", Role: domain.RoleVendor, VendorID: "vendor-1"}
	req := validBillRequest()
	req.CurrentVendorUserID = "u-1"

	resp, err := fx.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "fmt-vendor", resp.InvoiceFormatID)
}

func TestResolucion_UsuarioSinVendor_SigueLaCascada(t *testing.T) {
	fx := newBillFixture()
	fx.addFormat("fmt-default", true)
	fx.users.byID["u-1"] = &entity.User{ID: "u-1", Role: domain.RoleStore, StoreID: "store-1"}
	req := validBillRequest()
	req.CurrentVendorUserID = "u-1"

	resp, err := fx.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "fmt-default", resp.InvoiceFormatID, "sin vendor se cae al default")
}

func TestResolucion_UsuarioInexistente_NoBloquea(t *testing.T) {
	fx := newBillFixture()
	fx.addFormat("fmt-default", true)
	req := validBillRequest()
	req.CurrentVendorUserID = "no-existe"

	resp, err := fx.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "fmt-default", resp.InvoiceFormatID)
}

func TestResolucion_SoloDefault(t *testing.T) {
	fx := newBillFixture()
	fx.addFormat("fmt-default", true)

	resp, err := fx.uc.Create(context.Background(), validBillRequest())

	require.NoError(t, err)
	assert.Equal(t, "fmt-default", resp.InvoiceFormatID)
}

func TestResolucion_SinNingunFormato_FacturaSinVinculo(t *testing.T) {
	fx := newBillFixture()

	resp, err := fx.uc.Create(context.Background(), validBillRequest())

	require.NoError(t, err)
	assert.Empty(t, resp.InvoiceFormatID, "la resolución nunca bloquea la creación")
	require.Len(t, fx.bills.byID, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestGetFactura_Inexistente_NotFound(t *testing.T) {
	fx := newBillFixture()

	_, err := fx.uc.GetByID(context.Background(), "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByStore_SoloFacturasDeLaTienda(t *testing.T) {
	fx := newBillFixture()
	_, err := fx.uc.Create(context.Background(), validBillRequest())
	require.NoError(t, err)
	fx.bills.byID["ajena"] = &entity.Bill{ID: "ajena", StoreID: "store-2"}

	resp, err := fx.uc.ListByStore(context.Background(), "store-1", dto.PageRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "store-1", resp.Items[0].StoreID)
}
