// Package numbering asigna y reclama los números de orden (nOrder) de las
// facturas. Cada colección tiene su propio ámbito de numeración: las facturas
// de proveedor y las de cliente nunca comparten contador.
//
// Invariante: dentro de un ámbito, el conjunto de nOrder asignados es siempre
// {1..K} sin duplicados ni huecos. Los borrados desplazan hacia abajo los
// números posteriores y el intercambio permuta dos números ya asignados.
package numbering

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/domain"
)

// Scope ámbito de numeración de una colección de facturas.
type Scope string

const (
	ScopeInvoices       Scope = "invoices"
	ScopeClientInvoices Scope = "client_invoices"
)

// Repository operaciones de persistencia que necesita el asignador.
// NextOrderNumber debe ser atómico: dos confirmaciones simultáneas en el
// mismo ámbito no pueden recibir el mismo número (en PostgreSQL, un
// INSERT ... ON CONFLICT DO UPDATE ... RETURNING sobre la fila del contador).
type Repository interface {
	NextOrderNumber(ctx context.Context, scope Scope) (int, error)
	// ShiftAfter resta 1 al nOrder de todo registro con nOrder > removed y
	// decrementa el contador del ámbito, restaurando la densidad tras un borrado.
	ShiftAfter(ctx context.Context, scope Scope, removed int) error
	// OrderNumber devuelve el nOrder del registro, o nil si no está confirmado.
	// Error domain.ErrInvoiceNotFound si el id no resuelve.
	OrderNumber(ctx context.Context, scope Scope, id string) (*int, error)
	SetOrderNumber(ctx context.Context, scope Scope, id string, nOrder int) error
}

// Allocator reparte números de orden secuenciales por ámbito.
type Allocator struct {
	repo Repository
}

// NewAllocator construye el asignador.
func NewAllocator(repo Repository) *Allocator {
	return &Allocator{repo: repo}
}

// AssignNext devuelve el siguiente número del ámbito (1 si está vacío).
func (a *Allocator) AssignNext(ctx context.Context, scope Scope) (int, error) {
	return a.repo.NextOrderNumber(ctx, scope)
}

// Decrement restaura la densidad tras eliminar el registro con nOrder removed.
func (a *Allocator) Decrement(ctx context.Context, scope Scope, removed int) error {
	return a.repo.ShiftAfter(ctx, scope, removed)
}

// Swap intercambia los nOrder de dos registros confirmados del mismo ámbito.
// Falla con domain.ErrNotConfirmed si alguno no tiene número asignado.
func (a *Allocator) Swap(ctx context.Context, scope Scope, idA, idB string) error {
	orderA, err := a.repo.OrderNumber(ctx, scope, idA)
	if err != nil {
		return err
	}
	orderB, err := a.repo.OrderNumber(ctx, scope, idB)
	if err != nil {
		return err
	}
	if orderA == nil || orderB == nil {
		return domain.ErrNotConfirmed
	}
	if err := a.repo.SetOrderNumber(ctx, scope, idA, *orderB); err != nil {
		return err
	}
	return a.repo.SetOrderNumber(ctx, scope, idB, *orderA)
}
