package clients

import (
	"context"
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
// Almacenes en memoria
// ─────────────────────────────────────────────────────────────────────────────

type memClientRepo struct{ byID map[string]*entity.Client }

func (m *memClientRepo) Create(_ context.Context, c *entity.Client) error             { m.byID[c.ID] = c; return nil }
func (m *memClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) { return m.byID[id], nil }
func (m *memClientRepo) Update(_ context.Context, c *entity.Client) error             { m.byID[c.ID] = c; return nil }
func (m *memClientRepo) Find(_ context.Context, name string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, nil
}
func (m *memClientRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

type memClientInvoiceRepo struct{ byID map[string]*entity.ClientInvoice }

func cloneClientInvoice(i *entity.ClientInvoice) *entity.ClientInvoice {
	out := *i
	if i.NOrder != nil {
		n := *i.NOrder
		out.NOrder = &n
	}
	return &out
}

func (m *memClientInvoiceRepo) Create(_ context.Context, i *entity.ClientInvoice) error {
	m.byID[i.ID] = cloneClientInvoice(i)
	return nil
}
func (m *memClientInvoiceRepo) GetByID(_ context.Context, id string) (*entity.ClientInvoice, error) {
	i, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneClientInvoice(i), nil
}
func (m *memClientInvoiceRepo) Update(_ context.Context, i *entity.ClientInvoice) error {
	m.byID[i.ID] = cloneClientInvoice(i)
	return nil
}
func (m *memClientInvoiceRepo) Delete(_ context.Context, id string) error { delete(m.byID, id); return nil }
func (m *memClientInvoiceRepo) FindByYear(_ context.Context, year int) ([]*entity.ClientInvoice, error) {
	var out []*entity.ClientInvoice
	for _, i := range m.byID {
		if time.UnixMilli(i.Date).UTC().Year() == year {
			out = append(out, cloneClientInvoice(i))
		}
	}
	return out, nil
}
func (m *memClientInvoiceRepo) FindByClient(_ context.Context, client string) ([]*entity.ClientInvoice, error) {
	var out []*entity.ClientInvoice
	for _, i := range m.byID {
		if i.Client == client {
			out = append(out, cloneClientInvoice(i))
		}
	}
	return out, nil
}

// memSeqRepo numera facturas de cliente sobre el almacén en memoria.
type memSeqRepo struct {
	invoices *memClientInvoiceRepo
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

type memTx struct {
	invoices *memClientInvoiceRepo
	seq      *memSeqRepo
}

func (t memTx) RunClientInvoicing(_ context.Context, fn func(
	repository.ClientInvoiceRepository,
	numbering.Repository,
) error) error {
	return fn(t.invoices, t.seq)
}

const testClient = "cli-1"

func newTestUseCase() (*UseCase, *memClientInvoiceRepo, *memSeqRepo) {
	clients := &memClientRepo{byID: map[string]*entity.Client{
		testClient: {ID: testClient, Name: "Restaurante La Vega"},
	}}
	invoices := &memClientInvoiceRepo{byID: map[string]*entity.ClientInvoice{}}
	seq := &memSeqRepo{invoices: invoices, counters: map[numbering.Scope]int{}}
	return NewUseCase(memTx{invoices: invoices, seq: seq}, clients, invoices), invoices, seq
}

var abril2025 = time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC).UnixMilli()

func draftInvoice(t *testing.T, uc *UseCase) string {
	t.Helper()
	resp, err := uc.CreateInvoice(context.Background(), dto.CreateClientInvoiceRequest{
		Client: testClient,
		Date:   abril2025,
		Totals: &dto.TotalsResponse{
			TaxBase: decimal.RequireFromString("100"),
			IVA:     decimal.RequireFromString("10"),
			Total:   decimal.RequireFromString("110"),
		},
	})
	require.NoError(t, err)
	return resp.ID
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestCreate_SinNombreFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.Create(context.Background(), dto.ClientRequest{})
	assert.ErrorIs(t, err, domain.ErrParamsMissing)
}

func TestCreateInvoice_ClienteInexistenteFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.CreateInvoice(context.Background(), dto.CreateClientInvoiceRequest{Client: "cli-fantasma"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestCreateInvoice_RedondeaElTotalUnaVez(t *testing.T) {
	uc, invoices, _ := newTestUseCase()

	resp, err := uc.CreateInvoice(context.Background(), dto.CreateClientInvoiceRequest{
		Client: testClient,
		Date:   abril2025,
		Totals: &dto.TotalsResponse{
			TaxBase: decimal.RequireFromString("75.48"),
			IVA:     decimal.RequireFromString("69.544"),
		},
	})
	require.NoError(t, err)

	stored := invoices.byID[resp.ID]
	assert.True(t, stored.Totals.Total.Equal(decimal.RequireFromString("145.02")),
		"total %s, esperado 145.02 (redondeo único)", stored.Totals.Total)
	assert.Nil(t, resp.NOrder, "la factura recién creada es un borrador")
}

func TestConfirmInvoice_NumeraEnSuPropioAmbito(t *testing.T) {
	uc, invoices, seq := newTestUseCase()
	// El ámbito de facturas de proveedor ya tiene números asignados.
	seq.counters[numbering.ScopeInvoices] = 7

	id := draftInvoice(t, uc)
	resp, err := uc.ConfirmInvoice(context.Background(), id)
	require.NoError(t, err)

	require.NotNil(t, resp.NOrder)
	assert.Equal(t, 1, *resp.NOrder, "el contador de cliente arranca en 1")
	require.NotNil(t, invoices.byID[id].NOrder)
	assert.Equal(t, 7, seq.counters[numbering.ScopeInvoices], "el contador de proveedor no se toca")
}

func TestConfirmInvoice_SinFechaFalla(t *testing.T) {
	uc, invoices, _ := newTestUseCase()
	id := draftInvoice(t, uc)
	invoices.byID[id].Date = 0

	_, err := uc.ConfirmInvoice(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrDateNotValid)
}

func TestConfirmInvoice_DosVecesFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()
	id := draftInvoice(t, uc)
	_, err := uc.ConfirmInvoice(context.Background(), id)
	require.NoError(t, err)

	_, err = uc.ConfirmInvoice(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrParamNotValid)
}

func TestDeleteInvoice_ConfirmadaRestauraDensidad(t *testing.T) {
	uc, invoices, seq := newTestUseCase()
	a := draftInvoice(t, uc)
	b := draftInvoice(t, uc)
	_, err := uc.ConfirmInvoice(context.Background(), a)
	require.NoError(t, err)
	_, err = uc.ConfirmInvoice(context.Background(), b)
	require.NoError(t, err)

	require.NoError(t, uc.DeleteInvoice(context.Background(), a))

	assert.NotContains(t, invoices.byID, a)
	require.NotNil(t, invoices.byID[b].NOrder)
	assert.Equal(t, 1, *invoices.byID[b].NOrder)
	assert.Equal(t, 1, seq.counters[numbering.ScopeClientInvoices])
}

func TestDeleteInvoice_PagadaNoEliminable(t *testing.T) {
	uc, invoices, _ := newTestUseCase()
	id := draftInvoice(t, uc)
	invoices.byID[id].Paid = true

	err := uc.DeleteInvoice(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrInvoiceNoRemovable)
}

func TestInvoicesByYear_FiltraPorAno(t *testing.T) {
	uc, invoices, _ := newTestUseCase()
	id := draftInvoice(t, uc)
	invoices.byID["vieja"] = &entity.ClientInvoice{
		ID:     "vieja",
		Client: testClient,
		Date:   time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC).UnixMilli(),
	}

	out, err := uc.InvoicesByYear(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, id, out[0].ID)
}

func TestInvoicesByYear_AnoInvalidoFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.InvoicesByYear(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrDateNotValid)
}
