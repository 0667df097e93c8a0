package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arroyo-erp/arroyo-api/internal/application/numbering"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
)

var _ numbering.Repository = (*SequenceRepo)(nil)

// SequenceRepo contadores de números de orden por ámbito sobre la tabla
// counters. Pensado para usarse dentro de una transacción: el desplazamiento
// tras un borrado y la asignación deben ser atómicos de cara al caller.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador de contadores. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// invoiceTable devuelve la tabla de facturas de un ámbito de numeración.
func invoiceTable(scope numbering.Scope) (string, error) {
	switch scope {
	case numbering.ScopeInvoices:
		return "invoices", nil
	case numbering.ScopeClientInvoices:
		return "client_invoices", nil
	default:
		return "", fmt.Errorf("ámbito de numeración desconocido: %q", scope)
	}
}

// NextOrderNumber incrementa y devuelve el contador del ámbito de forma
// atómica (la fila se crea en 1 si no existe). Dos confirmaciones
// simultáneas nunca reciben el mismo número: el upsert bloquea la fila.
func (r *SequenceRepo) NextOrderNumber(ctx context.Context, scope numbering.Scope) (int, error) {
	var next int
	err := r.q.QueryRow(ctx, `
		INSERT INTO counters (scope, value) VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET value = counters.value + 1
		RETURNING value`, string(scope),
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	return next, nil
}

// ShiftAfter resta 1 al nOrder de todo registro con nOrder > removed y
// decrementa el contador del ámbito. En el ámbito de facturas de proveedor
// los albaranes copian el nOrder de su factura, así que se desplazan igual.
func (r *SequenceRepo) ShiftAfter(ctx context.Context, scope numbering.Scope, removed int) error {
	table, err := invoiceTable(scope)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE `+table+` SET n_order = n_order - 1 WHERE n_order > $1`, removed,
	); err != nil {
		return fmt.Errorf("shift order numbers: %w", err)
	}
	if scope == numbering.ScopeInvoices {
		if _, err := r.q.Exec(ctx,
			`UPDATE delivery_orders SET n_order = n_order - 1 WHERE n_order > $1`, removed,
		); err != nil {
			return fmt.Errorf("shift delivery order numbers: %w", err)
		}
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE counters SET value = value - 1 WHERE scope = $1`, string(scope),
	); err != nil {
		return fmt.Errorf("decrement counter: %w", err)
	}
	return nil
}

// OrderNumber devuelve el nOrder del registro, nil si no está confirmado y
// domain.ErrInvoiceNotFound si el id no resuelve.
func (r *SequenceRepo) OrderNumber(ctx context.Context, scope numbering.Scope, id string) (*int, error) {
	table, err := invoiceTable(scope)
	if err != nil {
		return nil, err
	}
	var nOrder *int
	err = r.q.QueryRow(ctx,
		`SELECT n_order FROM `+table+` WHERE id = $1`, id,
	).Scan(&nOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("get order number: %w", err)
	}
	return nOrder, nil
}

// SetOrderNumber fija el nOrder de un registro (usado por el intercambio).
func (r *SequenceRepo) SetOrderNumber(ctx context.Context, scope numbering.Scope, id string, nOrder int) error {
	table, err := invoiceTable(scope)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE `+table+` SET n_order = $2 WHERE id = $1`, id, nOrder,
	)
	if err != nil {
		return fmt.Errorf("set order number: %w", err)
	}
	return nil
}
