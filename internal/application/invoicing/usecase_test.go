package invoicing

import (
	"context"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/application/numbering"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria. Devuelven copias, como haría la base de datos:
// mutar la entidad obtenida no muta el almacén hasta llamar a Update.
// ─────────────────────────────────────────────────────────────────────────────

type memProviderRepo struct {
	byID    map[string]*entity.Provider
	lastCtx context.Context
}

func (m *memProviderRepo) Create(_ context.Context, p *entity.Provider) error { m.byID[p.ID] = p; return nil }
func (m *memProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	m.lastCtx = ctx
	return m.byID[id], nil
}
func (m *memProviderRepo) Update(_ context.Context, p *entity.Provider) error { m.byID[p.ID] = p; return nil }
func (m *memProviderRepo) Find(_ context.Context, _ string) ([]*entity.Provider, error) {
	out := make([]*entity.Provider, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}
func (m *memProviderRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

type memInvoiceRepo struct{ byID map[string]*entity.Invoice }

func cloneInvoice(i *entity.Invoice) *entity.Invoice {
	out := *i
	if i.NOrder != nil {
		n := *i.NOrder
		out.NOrder = &n
	}
	out.DeliveryOrders = append([]string(nil), i.DeliveryOrders...)
	return &out
}

func (m *memInvoiceRepo) Create(_ context.Context, i *entity.Invoice) error { m.byID[i.ID] = cloneInvoice(i); return nil }
func (m *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	i, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneInvoice(i), nil
}
func (m *memInvoiceRepo) Update(_ context.Context, i *entity.Invoice) error { m.byID[i.ID] = cloneInvoice(i); return nil }
func (m *memInvoiceRepo) Delete(_ context.Context, id string) error         { delete(m.byID, id); return nil }
func (m *memInvoiceRepo) Find(_ context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, i := range m.byID {
		if filter.Confirmed && i.NOrder == nil {
			continue
		}
		if filter.Provider != "" && i.Provider != filter.Provider {
			continue
		}
		out = append(out, cloneInvoice(i))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}
func (m *memInvoiceRepo) FindByPayment(_ context.Context, paymentID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, i := range m.byID {
		if i.Payment.PaymentID == paymentID {
			out = append(out, cloneInvoice(i))
		}
	}
	return out, nil
}
func (m *memInvoiceRepo) UpdatePaymentSnapshot(_ context.Context, invoiceID string, snapshot entity.PaymentSnapshot) error {
	i, ok := m.byID[invoiceID]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	i.Payment = snapshot
	return nil
}

type memDORepo struct{ byID map[string]*entity.DeliveryOrder }

func cloneOrder(d *entity.DeliveryOrder) *entity.DeliveryOrder {
	out := *d
	if d.Invoice != nil {
		inv := *d.Invoice
		out.Invoice = &inv
	}
	if d.NOrder != nil {
		n := *d.NOrder
		out.NOrder = &n
	}
	out.Products = append([]entity.DeliveryOrderProduct(nil), d.Products...)
	return &out
}

func (m *memDORepo) Create(_ context.Context, d *entity.DeliveryOrder) error { m.byID[d.ID] = cloneOrder(d); return nil }
func (m *memDORepo) GetByID(_ context.Context, id string) (*entity.DeliveryOrder, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(d), nil
}
func (m *memDORepo) GetByIDs(_ context.Context, ids []string) ([]*entity.DeliveryOrder, error) {
	out := make([]*entity.DeliveryOrder, 0, len(ids))
	for _, id := range ids {
		if d, ok := m.byID[id]; ok {
			out = append(out, cloneOrder(d))
		}
	}
	return out, nil
}
func (m *memDORepo) Update(_ context.Context, d *entity.DeliveryOrder) error { m.byID[d.ID] = cloneOrder(d); return nil }
func (m *memDORepo) Delete(_ context.Context, id string) error               { delete(m.byID, id); return nil }
func (m *memDORepo) FindFreeByProvider(_ context.Context, provider string) ([]*entity.DeliveryOrder, error) {
	var out []*entity.DeliveryOrder
	for _, d := range m.byID {
		if d.Provider == provider && d.Invoice == nil {
			out = append(out, cloneOrder(d))
		}
	}
	return out, nil
}
func (m *memDORepo) FindInvoicedByProvider(_ context.Context, provider string, limit, offset int) ([]*entity.DeliveryOrder, int, error) {
	var all []*entity.DeliveryOrder
	for _, d := range m.byID {
		if d.Provider == provider && d.Invoice != nil {
			all = append(all, cloneOrder(d))
		}
	}
	sort.Slice(all, func(a, b int) bool { return all[a].Date > all[b].Date })
	count := len(all)
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, count, nil
}
func (m *memDORepo) CountFreeByProvider(_ context.Context, provider string) (int, error) {
	n := 0
	for _, d := range m.byID {
		if d.Provider == provider && d.Invoice == nil {
			n++
		}
	}
	return n, nil
}
func (m *memDORepo) SetInvoice(_ context.Context, ids []string, invoiceID *string, nOrder *int) error {
	for _, id := range ids {
		d, ok := m.byID[id]
		if !ok {
			return domain.ErrDeliveryOrderNotFound
		}
		d.Invoice = invoiceID
		d.NOrder = nOrder
	}
	return nil
}

type memPaymentRepo struct{ byID map[string]*entity.Payment }

func clonePayment(p *entity.Payment) *entity.Payment {
	out := *p
	out.Invoices = append([]string(nil), p.Invoices...)
	return &out
}

func (m *memPaymentRepo) Create(_ context.Context, p *entity.Payment) error { m.byID[p.ID] = clonePayment(p); return nil }
func (m *memPaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return clonePayment(p), nil
}
func (m *memPaymentRepo) Update(_ context.Context, p *entity.Payment) error { m.byID[p.ID] = clonePayment(p); return nil }
func (m *memPaymentRepo) Delete(_ context.Context, id string) error         { delete(m.byID, id); return nil }
func (m *memPaymentRepo) FindUnpaid(_ context.Context) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range m.byID {
		if !p.Paid {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

type memBillingRepo struct{ byKey map[string]*entity.Billing }

func billingKey(provider string, year int) string {
	return provider + "|" + strconv.Itoa(year)
}

func (m *memBillingRepo) GetByProviderAndYear(_ context.Context, provider string, year int) (*entity.Billing, error) {
	b, ok := m.byKey[billingKey(provider, year)]
	if !ok {
		return nil, nil
	}
	out := *b
	return &out, nil
}
func (m *memBillingRepo) Upsert(_ context.Context, b *entity.Billing) error {
	out := *b
	m.byKey[billingKey(b.Provider, b.Year)] = &out
	return nil
}
func (m *memBillingRepo) FindByYear(_ context.Context, year int) ([]*entity.Billing, error) {
	var out []*entity.Billing
	for _, b := range m.byKey {
		if b.Year == year {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

// memSeqRepo numera sobre los almacenes en memoria, replicando lo que hace
// la implementación SQL: el desplazamiento tras un borrado alcanza también
// al nOrder copiado en los albaranes.
type memSeqRepo struct {
	invoices *memInvoiceRepo
	orders   *memDORepo
	counters map[numbering.Scope]int
}

func (m *memSeqRepo) NextOrderNumber(_ context.Context, scope numbering.Scope) (int, error) {
	m.counters[scope]++
	return m.counters[scope], nil
}

func (m *memSeqRepo) ShiftAfter(_ context.Context, scope numbering.Scope, removed int) error {
	for _, i := range m.invoices.byID {
		if i.NOrder != nil && *i.NOrder > removed {
			*i.NOrder--
		}
	}
	for _, d := range m.orders.byID {
		if d.NOrder != nil && *d.NOrder > removed {
			*d.NOrder--
		}
	}
	m.counters[scope]--
	return nil
}

func (m *memSeqRepo) OrderNumber(_ context.Context, scope numbering.Scope, id string) (*int, error) {
	i, ok := m.invoices.byID[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	if i.NOrder == nil {
		return nil, nil
	}
	n := *i.NOrder
	return &n, nil
}

func (m *memSeqRepo) SetOrderNumber(_ context.Context, scope numbering.Scope, id string, nOrder int) error {
	i, ok := m.invoices.byID[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	n := nOrder
	i.NOrder = &n
	return nil
}

type memTx struct{ f *fixture }

func (t memTx) RunInvoicing(_ context.Context, fn func(
	repository.InvoiceRepository,
	repository.DeliveryOrderRepository,
	repository.PaymentRepository,
	repository.BillingRepository,
	numbering.Repository,
) error) error {
	return fn(t.f.invoices, t.f.orders, t.f.payments, t.f.billings, t.f.seq)
}

// ─────────────────────────────────────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────────────────────────────────────

type fixture struct {
	providers *memProviderRepo
	invoices  *memInvoiceRepo
	orders    *memDORepo
	payments  *memPaymentRepo
	billings  *memBillingRepo
	seq       *memSeqRepo
	uc        *UseCase
}

const testProvider = "prov-1"

func newFixture() *fixture {
	f := &fixture{
		providers: &memProviderRepo{byID: map[string]*entity.Provider{}},
		invoices:  &memInvoiceRepo{byID: map[string]*entity.Invoice{}},
		orders:    &memDORepo{byID: map[string]*entity.DeliveryOrder{}},
		payments:  &memPaymentRepo{byID: map[string]*entity.Payment{}},
		billings:  &memBillingRepo{byKey: map[string]*entity.Billing{}},
	}
	f.seq = &memSeqRepo{invoices: f.invoices, orders: f.orders, counters: map[numbering.Scope]int{}}
	f.providers.byID[testProvider] = &entity.Provider{ID: testProvider, Name: "Frutas del Arroyo"}
	f.uc = NewUseCase(memTx{f}, f.invoices, f.orders, f.providers, f.payments, nil, nil)
	return f
}

// addOrder registra un albarán libre con los importes indicados.
func (f *fixture) addOrder(id string, taxBase, iva, re string) {
	tb := decimal.RequireFromString(taxBase)
	iv := decimal.RequireFromString(iva)
	r := decimal.RequireFromString(re)
	f.orders.byID[id] = &entity.DeliveryOrder{
		ID:           id,
		Provider:     testProvider,
		NameProvider: "Frutas del Arroyo",
		Date:         time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Totals: entity.Totals{
			TaxBase: tb,
			IVA:     iv,
			Re:      r,
			Total:   tb.Add(iv).Add(r),
		},
	}
}

var mayo2025 = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC).UnixMilli()

// confirmed crea una factura agregada, le fija fecha y la confirma.
func (f *fixture) confirmed(t *testing.T, orderIDs ...string) *dto.InvoiceResponse {
	t.Helper()
	ctx := context.Background()
	resp, err := f.uc.Create(ctx, dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: orderIDs,
	})
	require.NoError(t, err)
	_, err = f.uc.Edit(ctx, resp.ID, dto.EditInvoiceRequest{
		Data: &dto.InvoiceDataRequest{DateInvoice: &mayo2025},
	})
	require.NoError(t, err)
	out, err := f.uc.Confirm(ctx, resp.ID, dto.ConfirmInvoiceRequest{Type: entity.PaymentTypeTransfer})
	require.NoError(t, err)
	return out
}

func assertMoney(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)),
		"importe %s, esperado %s", got, want)
}

// ─────────────────────────────────────────────────────────────────────────────
// Creación
// ─────────────────────────────────────────────────────────────────────────────

func TestCreate_AgregaAlbaranes(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "75.48", "7.55", "0")
	f.addOrder("alb-2", "69.544", "6.95", "0.97")

	resp, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1", "alb-2"},
	})
	require.NoError(t, err)

	// Los totales se suman sobre todos los albaranes y se redondean una
	// sola vez: 75.48 + 69.544 = 145.02, no 145.03.
	assertMoney(t, resp.Totals.TaxBase, "145.02")
	assertMoney(t, resp.Totals.IVA, "14.50")
	assertMoney(t, resp.Totals.Re, "0.97")
	assert.Nil(t, resp.NOrder, "la factura recién creada es un borrador")

	// Los albaranes quedan vinculados pero sin nOrder hasta confirmar.
	for _, id := range []string{"alb-1", "alb-2"} {
		do := f.orders.byID[id]
		require.NotNil(t, do.Invoice)
		assert.Equal(t, resp.ID, *do.Invoice)
		assert.Nil(t, do.NOrder)
	}
}

func TestCreate_SinConceptoFalla(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{Provider: testProvider})
	assert.ErrorIs(t, err, domain.ErrParamsMissing)
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider: "prov-fantasma",
		Concept:  entity.ConceptCompras,
	})
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestCreate_AlbaranInexistenteFalla(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")

	_, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1", "alb-fantasma"},
	})
	assert.ErrorIs(t, err, domain.ErrDeliveryOrderNotFound)

	// Nada queda vinculado.
	assert.Nil(t, f.orders.byID["alb-1"].Invoice)
}

func TestCreate_SinAlbaranesNiTotalesFalla(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider: testProvider,
		Concept:  entity.ConceptGastos,
	})
	assert.ErrorIs(t, err, domain.ErrParamsMissing)
}

func TestCreate_TotalesInconsistentesFalla(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider: testProvider,
		Concept:  entity.ConceptGastos,
		Totals: &dto.TotalsResponse{
			TaxBase: decimal.RequireFromString("100"),
			IVA:     decimal.RequireFromString("21"),
			Total:   decimal.RequireFromString("120"), // debería ser 121
		},
	})
	assert.ErrorIs(t, err, domain.ErrParamNotValid)
}

func TestCreateExpense_AplicaTasasSobreLaBase(t *testing.T) {
	f := newFixture()
	taxBase := 100.10
	iva := 0.21
	re := 0.052

	resp, err := f.uc.CreateExpense(context.Background(), dto.CreateExpenseRequest{
		Provider: testProvider,
		Concept:  entity.ConceptGastos,
		TaxBase:  &taxBase,
		IVA:      &iva,
		Re:       &re,
	})
	require.NoError(t, err)

	assertMoney(t, resp.Totals.TaxBase, "100.10")
	assertMoney(t, resp.Totals.IVA, "21.02")  // round(100.10 * 0.21)
	assertMoney(t, resp.Totals.Re, "5.21")    // round(100.10 * 0.052)
	assertMoney(t, resp.Totals.Total, "126.33")
	assertMoney(t, resp.Totals.Rate, "0.21")
}

func TestCreateExpense_SinBaseFalla(t *testing.T) {
	f := newFixture()
	iva := 0.21
	_, err := f.uc.CreateExpense(context.Background(), dto.CreateExpenseRequest{
		Provider: testProvider,
		Concept:  entity.ConceptGastos,
		IVA:      &iva,
	})
	assert.ErrorIs(t, err, domain.ErrParamsMissing)
}

func TestCreate_AlbaranYaFacturadoFalla(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")

	first, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1"},
	})
	require.NoError(t, err)

	// Un segundo intento sobre el mismo albarán falla sin repuntearlo.
	_, err = f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1"},
	})
	assert.ErrorIs(t, err, domain.ErrDeliveryOrderInvoiced)

	require.NotNil(t, f.orders.byID["alb-1"].Invoice)
	assert.Equal(t, first.ID, *f.orders.byID["alb-1"].Invoice)
}

type testCtxKey struct{}

func TestCreate_PropagaElContexto(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")

	ctx := context.WithValue(context.Background(), testCtxKey{}, "req-42")
	_, err := f.uc.Create(ctx, dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1"},
	})
	require.NoError(t, err)

	// El contexto de la petición llega hasta la capa de persistencia.
	require.NotNil(t, f.providers.lastCtx)
	assert.Equal(t, "req-42", f.providers.lastCtx.Value(testCtxKey{}))
}

// ─────────────────────────────────────────────────────────────────────────────
// Confirmación
// ─────────────────────────────────────────────────────────────────────────────

func TestConfirm_AsignaNumeroCreaPagoYAcumulaFacturacion(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "100", "10", "1.40")

	resp := f.confirmed(t, "alb-1")
	require.NotNil(t, resp.NOrder)
	assert.Equal(t, 1, *resp.NOrder)

	// El pago canónico cubre exactamente esta factura, pendiente de realizar.
	require.Len(t, f.payments.byID, 1)
	var payment *entity.Payment
	for _, p := range f.payments.byID {
		payment = p
	}
	assert.Equal(t, []string{resp.ID}, payment.Invoices)
	assert.Equal(t, entity.PaymentTypeTransfer, payment.Type)
	assert.Equal(t, mayo2025, payment.PaymentDate)
	assert.False(t, payment.Paid)
	assertMoney(t, payment.Amount, "111.40")
	assert.Equal(t, "1", payment.NOrder)

	// La factura guarda la proyección del pago.
	stored := f.invoices.byID[resp.ID]
	assert.Equal(t, payment.ID, stored.Payment.PaymentID)

	// El nOrder se copia en los albaranes.
	require.NotNil(t, f.orders.byID["alb-1"].NOrder)
	assert.Equal(t, 1, *f.orders.byID["alb-1"].NOrder)

	// El agregado anual recoge el total en el trimestre de la fecha de factura.
	b, err := f.billings.GetByProviderAndYear(context.Background(), testProvider, 2025)
	require.NoError(t, err)
	require.NotNil(t, b)
	assertMoney(t, b.Annual, "111.40")
	assertMoney(t, b.Trimesters[1], "111.40") // mayo → segundo trimestre
	assertMoney(t, b.Trimesters[0], "0")
}

func TestConfirm_NumerosConsecutivos(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	f.addOrder("alb-2", "20", "2", "0")

	a := f.confirmed(t, "alb-1")
	b := f.confirmed(t, "alb-2")
	assert.Equal(t, 1, *a.NOrder)
	assert.Equal(t, 2, *b.NOrder)
}

func TestConfirm_SinFechaFacturaFalla(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	resp, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1"},
	})
	require.NoError(t, err)

	_, err = f.uc.Confirm(context.Background(), resp.ID, dto.ConfirmInvoiceRequest{Type: entity.PaymentTypeCash})
	assert.ErrorIs(t, err, domain.ErrDateNotValid)
}

func TestConfirm_SinTipoDePagoFalla(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	resp, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1"},
	})
	require.NoError(t, err)
	_, err = f.uc.Edit(context.Background(), resp.ID, dto.EditInvoiceRequest{
		Data: &dto.InvoiceDataRequest{DateInvoice: &mayo2025},
	})
	require.NoError(t, err)

	_, err = f.uc.Confirm(context.Background(), resp.ID, dto.ConfirmInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrParamsMissing)
}

func TestConfirm_DosVecesFalla(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	resp := f.confirmed(t, "alb-1")

	_, err := f.uc.Confirm(context.Background(), resp.ID, dto.ConfirmInvoiceRequest{Type: entity.PaymentTypeCash})
	assert.ErrorIs(t, err, domain.ErrParamNotValid)
}

// ─────────────────────────────────────────────────────────────────────────────
// Edición
// ─────────────────────────────────────────────────────────────────────────────

func TestEdit_EsIdempotente(t *testing.T) {
	f := newFixture()
	taxBase := 50.0
	iva := 0.10
	resp, err := f.uc.CreateExpense(context.Background(), dto.CreateExpenseRequest{
		Provider: testProvider,
		Concept:  entity.ConceptAlquiler,
		TaxBase:  &taxBase,
		IVA:      &iva,
	})
	require.NoError(t, err)

	nInvoice := "F-2025/17"
	edit := dto.EditInvoiceRequest{
		Data: &dto.InvoiceDataRequest{NInvoice: &nInvoice, DateInvoice: &mayo2025},
		Totals: &dto.TotalsResponse{
			TaxBase: decimal.RequireFromString("60"),
			IVA:     decimal.RequireFromString("6"),
			Total:   decimal.RequireFromString("66"),
		},
	}
	first, err := f.uc.Edit(context.Background(), resp.ID, edit)
	require.NoError(t, err)
	second, err := f.uc.Edit(context.Background(), resp.ID, edit)
	require.NoError(t, err)

	assert.Equal(t, first.NInvoice, second.NInvoice)
	assert.True(t, first.Totals.Total.Equal(second.Totals.Total))
	assertMoney(t, f.invoices.byID[resp.ID].Totals.Total, "66")
}

func TestEdit_TotalesEnFacturaAgregadaFalla(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	resp, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1"},
	})
	require.NoError(t, err)

	_, err = f.uc.Edit(context.Background(), resp.ID, dto.EditInvoiceRequest{
		Totals: &dto.TotalsResponse{
			TaxBase: decimal.RequireFromString("99"),
			Total:   decimal.RequireFromString("99"),
		},
	})
	assert.ErrorIs(t, err, domain.ErrParamNotValid)
}

func TestEdit_SinCambiosFalla(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Edit(context.Background(), "cualquiera", dto.EditInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrParamsMissing)
}

func TestEdit_FechaInvalidaFalla(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	resp, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1"},
	})
	require.NoError(t, err)

	bad := int64(-5)
	_, err = f.uc.Edit(context.Background(), resp.ID, dto.EditInvoiceRequest{
		Data: &dto.InvoiceDataRequest{DateInvoice: &bad},
	})
	assert.ErrorIs(t, err, domain.ErrDateNotValid)
}

// ─────────────────────────────────────────────────────────────────────────────
// Borrado
// ─────────────────────────────────────────────────────────────────────────────

func TestDelete_ConfirmadaRestauraDensidadYLiberaAlbaranes(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "100", "10", "0")
	f.addOrder("alb-2", "200", "20", "0")

	a := f.confirmed(t, "alb-1") // nOrder 1
	b := f.confirmed(t, "alb-2") // nOrder 2

	require.NoError(t, f.uc.Delete(context.Background(), a.ID))

	// La factura eliminada desaparece y sus albaranes vuelven al estado libre.
	assert.NotContains(t, f.invoices.byID, a.ID)
	assert.Nil(t, f.orders.byID["alb-1"].Invoice)
	assert.Nil(t, f.orders.byID["alb-1"].NOrder)

	// Las facturas posteriores bajan uno, también en el nOrder copiado de
	// sus albaranes: el conjunto vuelve a ser {1..K} denso.
	require.NotNil(t, f.invoices.byID[b.ID].NOrder)
	assert.Equal(t, 1, *f.invoices.byID[b.ID].NOrder)
	require.NotNil(t, f.orders.byID["alb-2"].NOrder)
	assert.Equal(t, 1, *f.orders.byID["alb-2"].NOrder)

	// El pago de la factura eliminada desaparece; queda solo el de la otra.
	require.Len(t, f.payments.byID, 1)
	for _, p := range f.payments.byID {
		assert.Equal(t, []string{b.ID}, p.Invoices)
	}

	// El agregado anual resta el total eliminado.
	bill, err := f.billings.GetByProviderAndYear(context.Background(), testProvider, 2025)
	require.NoError(t, err)
	require.NotNil(t, bill)
	assertMoney(t, bill.Annual, "220")
}

func TestDelete_RefrescaElNumeroDelPagoPendiente(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	f.addOrder("alb-2", "20", "2", "0")

	a := f.confirmed(t, "alb-1") // nOrder 1
	b := f.confirmed(t, "alb-2") // nOrder 2

	require.NoError(t, f.uc.Delete(context.Background(), a.ID))

	// La factura restante baja a nOrder 1 y su pago pendiente muestra el
	// número vigente, no el que tenía al confirmar.
	require.Len(t, f.payments.byID, 1)
	for _, p := range f.payments.byID {
		assert.Equal(t, []string{b.ID}, p.Invoices)
		assert.Equal(t, "1", p.NOrder)
	}
}

func TestDelete_BorradorNoTocaElContador(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	f.addOrder("alb-2", "20", "2", "0")
	f.confirmed(t, "alb-1")

	resp, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-2"},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(context.Background(), resp.ID))

	assert.Equal(t, 1, f.seq.counters[numbering.ScopeInvoices])
	assert.Nil(t, f.orders.byID["alb-2"].Invoice)
}

func TestDelete_PagadaNoEliminable(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	resp := f.confirmed(t, "alb-1")

	f.invoices.byID[resp.ID].Payment.Paid = true
	err := f.uc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNoRemovable)
}

func TestDelete_NoExisteFalla(t *testing.T) {
	f := newFixture()
	err := f.uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Intercambio de números
// ─────────────────────────────────────────────────────────────────────────────

func TestSwap_IntercambiaYPropagaALosAlbaranes(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	f.addOrder("alb-2", "20", "2", "0")

	a := f.confirmed(t, "alb-1") // nOrder 1
	b := f.confirmed(t, "alb-2") // nOrder 2

	require.NoError(t, f.uc.Swap(context.Background(), a.ID, b.ID))

	assert.Equal(t, 2, *f.invoices.byID[a.ID].NOrder)
	assert.Equal(t, 1, *f.invoices.byID[b.ID].NOrder)
	assert.Equal(t, 2, *f.orders.byID["alb-1"].NOrder)
	assert.Equal(t, 1, *f.orders.byID["alb-2"].NOrder)
}

func TestSwap_RefrescaLosNumerosDeLosPagosPendientes(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	f.addOrder("alb-2", "20", "2", "0")

	a := f.confirmed(t, "alb-1") // nOrder 1
	b := f.confirmed(t, "alb-2") // nOrder 2

	require.NoError(t, f.uc.Swap(context.Background(), a.ID, b.ID))

	// Los pagos pendientes siguen a sus facturas: el intercambio de
	// números se refleja también en el nOrder del pago.
	for _, p := range f.payments.byID {
		switch p.Invoices[0] {
		case a.ID:
			assert.Equal(t, "2", p.NOrder)
		case b.ID:
			assert.Equal(t, "1", p.NOrder)
		default:
			t.Fatalf("pago con factura inesperada %q", p.Invoices[0])
		}
	}
}

func TestSwap_ConBorradorFalla(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	f.addOrder("alb-2", "20", "2", "0")

	a := f.confirmed(t, "alb-1")
	draft, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-2"},
	})
	require.NoError(t, err)

	err = f.uc.Swap(context.Background(), a.ID, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotConfirmed)
}

// ─────────────────────────────────────────────────────────────────────────────
// Recalculo desde albaranes
// ─────────────────────────────────────────────────────────────────────────────

func TestRefresh_RecalculaDesdeLosAlbaranes(t *testing.T) {
	f := newFixture()
	f.addOrder("alb-1", "10", "1", "0")
	resp, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Provider:       testProvider,
		Concept:        entity.ConceptCompras,
		DeliveryOrders: []string{"alb-1"},
	})
	require.NoError(t, err)

	// Se editan las líneas del albarán ya facturado.
	do := f.orders.byID["alb-1"]
	do.Totals.TaxBase = decimal.RequireFromString("30")
	do.Totals.IVA = decimal.RequireFromString("3")
	do.Totals.Total = decimal.RequireFromString("33")

	out, err := f.uc.Refresh(context.Background(), resp.ID)
	require.NoError(t, err)
	assertMoney(t, out.Totals.Total, "33")
	assertMoney(t, f.invoices.byID[resp.ID].Totals.Total, "33")
}
