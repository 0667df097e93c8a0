package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas de proveedor. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, provider, name_provider, concept, n_invoice, delivery_orders,
	tax_base, iva, re, total, rate, date_register, date_invoice, n_order,
	payment_id, payment_date, payment_type, num_cheque, paid`

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query, invoiceArgs(invoice)...)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

// Update actualiza una factura existente, snapshot del pago incluido.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET provider = $2, name_provider = $3, concept = $4, n_invoice = $5,
			delivery_orders = $6, tax_base = $7, iva = $8, re = $9, total = $10, rate = $11,
			date_register = $12, date_invoice = $13, n_order = $14,
			payment_id = $15, payment_date = $16, payment_type = $17, num_cheque = $18, paid = $19
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, invoiceArgs(invoice)...)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete elimina una factura por ID.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// Find lista facturas por año natural (fecha de factura, o de registro para
// borradores sin fecha), con filtros opcionales de proveedor y confirmación.
func (r *InvoiceRepo) Find(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	start, end := yearBounds(filter.Year)
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE (CASE WHEN date_invoice > 0 THEN date_invoice ELSE date_register END) >= $1
		  AND (CASE WHEN date_invoice > 0 THEN date_invoice ELSE date_register END) < $2
		  AND ($3 = '' OR provider = $3)
		  AND (NOT $4 OR n_order IS NOT NULL)`
	rows, err := r.q.Query(ctx, query, start, end, filter.Provider, filter.Confirmed)
	if err != nil {
		return nil, fmt.Errorf("find invoices: %w", err)
	}
	return collectInvoices(rows)
}

// FindByPayment devuelve las facturas cuyo snapshot referencia el pago.
func (r *InvoiceRepo) FindByPayment(ctx context.Context, paymentID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE payment_id = $1`
	rows, err := r.q.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("find invoices by payment: %w", err)
	}
	return collectInvoices(rows)
}

// UpdatePaymentSnapshot refresca la proyección del pago en una factura.
func (r *InvoiceRepo) UpdatePaymentSnapshot(ctx context.Context, invoiceID string, snapshot entity.PaymentSnapshot) error {
	query := `
		UPDATE invoices SET payment_id = $2, payment_date = $3, payment_type = $4, num_cheque = $5, paid = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		invoiceID, snapshot.PaymentID, snapshot.PaymentDate, snapshot.Type, snapshot.NumCheque, snapshot.Paid,
	)
	if err != nil {
		return fmt.Errorf("update invoice payment snapshot: %w", err)
	}
	return nil
}

func invoiceArgs(invoice *entity.Invoice) []any {
	return []any{
		invoice.ID, invoice.Provider, invoice.NameProvider, invoice.Concept, invoice.NInvoice,
		invoice.DeliveryOrders, invoice.Totals.TaxBase, invoice.Totals.IVA, invoice.Totals.Re,
		invoice.Totals.Total, invoice.Totals.Rate, invoice.DateRegister, invoice.DateInvoice,
		invoice.NOrder, invoice.Payment.PaymentID, invoice.Payment.PaymentDate,
		invoice.Payment.Type, invoice.Payment.NumCheque, invoice.Payment.Paid,
	}
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.Provider, &inv.NameProvider, &inv.Concept, &inv.NInvoice,
		&inv.DeliveryOrders, &inv.Totals.TaxBase, &inv.Totals.IVA, &inv.Totals.Re,
		&inv.Totals.Total, &inv.Totals.Rate, &inv.DateRegister, &inv.DateInvoice,
		&inv.NOrder, &inv.Payment.PaymentID, &inv.Payment.PaymentDate,
		&inv.Payment.Type, &inv.Payment.NumCheque, &inv.Payment.Paid,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &inv, nil
}

func collectInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
