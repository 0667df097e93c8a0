package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

var _ repository.ClientInvoiceRepository = (*ClientInvoiceRepo)(nil)

// ClientInvoiceRepo implementación del puerto ClientInvoiceRepository sobre PostgreSQL (usable con pool o tx).
type ClientInvoiceRepo struct {
	q Querier
}

// NewClientInvoiceRepository construye el adaptador de persistencia para facturas de cliente. Pasar pool o tx (Querier).
func NewClientInvoiceRepository(q Querier) *ClientInvoiceRepo {
	return &ClientInvoiceRepo{q: q}
}

const clientInvoiceColumns = `id, client, name_client, date, tax_base, iva, re, total, n_order, paid`

// Create persiste una nueva factura de cliente.
func (r *ClientInvoiceRepo) Create(ctx context.Context, invoice *entity.ClientInvoice) error {
	query := `
		INSERT INTO client_invoices (` + clientInvoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Client, invoice.NameClient, invoice.Date,
		invoice.Totals.TaxBase, invoice.Totals.IVA, invoice.Totals.Re, invoice.Totals.Total,
		invoice.NOrder, invoice.Paid,
	)
	if err != nil {
		return fmt.Errorf("insert client invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura de cliente por ID. Devuelve nil si no existe.
func (r *ClientInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.ClientInvoice, error) {
	query := `SELECT ` + clientInvoiceColumns + ` FROM client_invoices WHERE id = $1`
	var inv entity.ClientInvoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Client, &inv.NameClient, &inv.Date,
		&inv.Totals.TaxBase, &inv.Totals.IVA, &inv.Totals.Re, &inv.Totals.Total,
		&inv.NOrder, &inv.Paid,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client invoice: %w", err)
	}
	return &inv, nil
}

// Update actualiza una factura de cliente existente.
func (r *ClientInvoiceRepo) Update(ctx context.Context, invoice *entity.ClientInvoice) error {
	query := `
		UPDATE client_invoices SET client = $2, name_client = $3, date = $4,
			tax_base = $5, iva = $6, re = $7, total = $8, n_order = $9, paid = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Client, invoice.NameClient, invoice.Date,
		invoice.Totals.TaxBase, invoice.Totals.IVA, invoice.Totals.Re, invoice.Totals.Total,
		invoice.NOrder, invoice.Paid,
	)
	if err != nil {
		return fmt.Errorf("update client invoice: %w", err)
	}
	return nil
}

// Delete elimina una factura de cliente por ID.
func (r *ClientInvoiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM client_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client invoice: %w", err)
	}
	return nil
}

// FindByYear lista las facturas de cliente de un año natural.
func (r *ClientInvoiceRepo) FindByYear(ctx context.Context, year int) ([]*entity.ClientInvoice, error) {
	start, end := yearBounds(year)
	query := `SELECT ` + clientInvoiceColumns + `
		FROM client_invoices WHERE date >= $1 AND date < $2`
	return r.findAll(ctx, query, start, end)
}

// FindByClient lista las facturas de un cliente, más recientes primero.
func (r *ClientInvoiceRepo) FindByClient(ctx context.Context, client string) ([]*entity.ClientInvoice, error) {
	query := `SELECT ` + clientInvoiceColumns + `
		FROM client_invoices WHERE client = $1 ORDER BY date DESC`
	return r.findAll(ctx, query, client)
}

func (r *ClientInvoiceRepo) findAll(ctx context.Context, query string, args ...any) ([]*entity.ClientInvoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find client invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.ClientInvoice
	for rows.Next() {
		var inv entity.ClientInvoice
		if err := rows.Scan(&inv.ID, &inv.Client, &inv.NameClient, &inv.Date,
			&inv.Totals.TaxBase, &inv.Totals.IVA, &inv.Totals.Re, &inv.Totals.Total,
			&inv.NOrder, &inv.Paid); err != nil {
			return nil, fmt.Errorf("scan client invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
