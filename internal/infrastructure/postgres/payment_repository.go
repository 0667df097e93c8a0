package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de persistencia para pagos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, provider, name_provider, payment_date, type, num_cheque, amount, paid, invoices, n_order`

// Create persiste un nuevo pago.
func (r *PaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		payment.ID, payment.Provider, payment.NameProvider, payment.PaymentDate,
		payment.Type, payment.NumCheque, payment.Amount, payment.Paid,
		payment.Invoices, payment.NOrder,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID. Devuelve nil si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	var p entity.Payment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Provider, &p.NameProvider, &p.PaymentDate,
		&p.Type, &p.NumCheque, &p.Amount, &p.Paid, &p.Invoices, &p.NOrder,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// Update actualiza un pago existente.
func (r *PaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments SET provider = $2, name_provider = $3, payment_date = $4,
			type = $5, num_cheque = $6, amount = $7, paid = $8, invoices = $9, n_order = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		payment.ID, payment.Provider, payment.NameProvider, payment.PaymentDate,
		payment.Type, payment.NumCheque, payment.Amount, payment.Paid,
		payment.Invoices, payment.NOrder,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete elimina un pago por ID.
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// FindUnpaid lista los pagos pendientes, más antiguos primero.
func (r *PaymentRepo) FindUnpaid(ctx context.Context) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE NOT paid ORDER BY payment_date`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find unpaid payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.Provider, &p.NameProvider, &p.PaymentDate,
			&p.Type, &p.NumCheque, &p.Amount, &p.Paid, &p.Invoices, &p.NOrder); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
