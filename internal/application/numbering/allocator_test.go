package numbering

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arroyo-erp/arroyo-api/internal/domain"
)

// ─────────────────────────────────────────────────────────────────────────────
// Repositorio en memoria para los tests del asignador.
// ─────────────────────────────────────────────────────────────────────────────

type memRepo struct {
	counters map[Scope]int
	orders   map[Scope]map[string]int
}

func newMemRepo() *memRepo {
	return &memRepo{
		counters: make(map[Scope]int),
		orders:   make(map[Scope]map[string]int),
	}
}

func (m *memRepo) scopeOrders(scope Scope) map[string]int {
	if m.orders[scope] == nil {
		m.orders[scope] = make(map[string]int)
	}
	return m.orders[scope]
}

func (m *memRepo) NextOrderNumber(_ context.Context, scope Scope) (int, error) {
	m.counters[scope]++
	return m.counters[scope], nil
}

func (m *memRepo) ShiftAfter(_ context.Context, scope Scope, removed int) error {
	for id, n := range m.scopeOrders(scope) {
		if n > removed {
			m.orders[scope][id] = n - 1
		}
	}
	m.counters[scope]--
	return nil
}

func (m *memRepo) OrderNumber(_ context.Context, scope Scope, id string) (*int, error) {
	n, ok := m.scopeOrders(scope)[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (m *memRepo) SetOrderNumber(_ context.Context, scope Scope, id string, nOrder int) error {
	m.scopeOrders(scope)[id] = nOrder
	return nil
}

// registra un nuevo registro confirmado y devuelve su id
func confirm(t *testing.T, a *Allocator, repo *memRepo, scope Scope, id string) int {
	t.Helper()
	n, err := a.AssignNext(context.Background(), scope)
	require.NoError(t, err)
	require.NoError(t, repo.SetOrderNumber(context.Background(), scope, id, n))
	return n
}

// assertDense comprueba que los nOrder del ámbito son exactamente {1..K}.
func assertDense(t *testing.T, repo *memRepo, scope Scope) {
	t.Helper()
	var ns []int
	for _, n := range repo.scopeOrders(scope) {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	for i, n := range ns {
		assert.Equal(t, i+1, n, "los nOrder deben ser {1..K} densos, obtenido %v", ns)
	}
	assert.Equal(t, len(ns), repo.counters[scope], "el contador debe coincidir con K")
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestAssignNext_EmpiezaEnUno(t *testing.T) {
	repo := newMemRepo()
	a := NewAllocator(repo)

	n, err := a.AssignNext(context.Background(), ScopeInvoices)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = a.AssignNext(context.Background(), ScopeInvoices)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAssignNext_AmbitosIndependientes(t *testing.T) {
	repo := newMemRepo()
	a := NewAllocator(repo)

	confirm(t, a, repo, ScopeInvoices, "prov-1")
	confirm(t, a, repo, ScopeInvoices, "prov-2")

	// El ámbito de facturas de cliente arranca en 1 aunque el de proveedor
	// ya tenga números asignados.
	n := confirm(t, a, repo, ScopeClientInvoices, "cli-1")
	assert.Equal(t, 1, n)
}

func TestDecrement_RestauraDensidad(t *testing.T) {
	repo := newMemRepo()
	a := NewAllocator(repo)

	for _, id := range []string{"f1", "f2", "f3", "f4"} {
		confirm(t, a, repo, ScopeInvoices, id)
	}

	// Eliminar la factura con nOrder=2: las posteriores bajan uno.
	delete(repo.orders[ScopeInvoices], "f2")
	require.NoError(t, a.Decrement(context.Background(), ScopeInvoices, 2))

	n, err := repo.OrderNumber(context.Background(), ScopeInvoices, "f3")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 2, *n)

	n, err = repo.OrderNumber(context.Background(), ScopeInvoices, "f4")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 3, *n)

	// f1 no cambia.
	n, err = repo.OrderNumber(context.Background(), ScopeInvoices, "f1")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 1, *n)

	assertDense(t, repo, ScopeInvoices)
}

func TestSwap_IntercambiaNumeros(t *testing.T) {
	repo := newMemRepo()
	a := NewAllocator(repo)

	confirm(t, a, repo, ScopeInvoices, "fa")
	confirm(t, a, repo, ScopeInvoices, "fb")

	require.NoError(t, a.Swap(context.Background(), ScopeInvoices, "fa", "fb"))

	na, _ := repo.OrderNumber(context.Background(), ScopeInvoices, "fa")
	nb, _ := repo.OrderNumber(context.Background(), ScopeInvoices, "fb")
	require.NotNil(t, na)
	require.NotNil(t, nb)
	assert.Equal(t, 2, *na)
	assert.Equal(t, 1, *nb)
	assertDense(t, repo, ScopeInvoices)
}

func TestSwap_FallaSinConfirmar(t *testing.T) {
	repo := newMemRepo()
	a := NewAllocator(repo)

	confirm(t, a, repo, ScopeInvoices, "fa")
	// "fb" existe pero no tiene nOrder
	err := a.Swap(context.Background(), ScopeInvoices, "fa", "fb")
	assert.ErrorIs(t, err, domain.ErrNotConfirmed)
}

// Propiedad: tras cualquier secuencia de asignaciones, borrados e
// intercambios, el conjunto de nOrder del ámbito es {1..K} sin huecos.
func TestSecuenciaAleatoria_SiempreDensa(t *testing.T) {
	repo := newMemRepo()
	a := NewAllocator(repo)
	rng := rand.New(rand.NewSource(42))

	ids := make([]string, 0, 64)
	next := 0

	for step := 0; step < 500; step++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(ids) < 2:
			id := string(rune('A'+next%26)) + string(rune('0'+next/26))
			next++
			confirm(t, a, repo, ScopeInvoices, id)
			ids = append(ids, id)
		case op == 1:
			i := rng.Intn(len(ids))
			id := ids[i]
			n, err := repo.OrderNumber(context.Background(), ScopeInvoices, id)
			require.NoError(t, err)
			require.NotNil(t, n)
			delete(repo.orders[ScopeInvoices], id)
			require.NoError(t, a.Decrement(context.Background(), ScopeInvoices, *n))
			ids = append(ids[:i], ids[i+1:]...)
		default:
			i, j := rng.Intn(len(ids)), rng.Intn(len(ids))
			require.NoError(t, a.Swap(context.Background(), ScopeInvoices, ids[i], ids[j]))
		}
		assertDense(t, repo, ScopeInvoices)
	}
}
