package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arroyo-erp/arroyo-api/internal/application/clients"
	"github.com/arroyo-erp/arroyo-api/internal/application/invoicing"
	"github.com/arroyo-erp/arroyo-api/internal/application/numbering"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// Ensure TxRunner implements invoicing.TxRunner and clients.TxRunner.
var _ invoicing.TxRunner = (*TxRunner)(nil)
var _ clients.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoicing inicia una transacción con los repos de facturación de
// proveedor atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunInvoicing(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	doRepo repository.DeliveryOrderRepository,
	paymentRepo repository.PaymentRepository,
	billingRepo repository.BillingRepository,
	seqRepo numbering.Repository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	doRepo := NewDeliveryOrderRepository(tx)
	paymentRepo := NewPaymentRepository(tx)
	billingRepo := NewBillingRepository(tx)
	seqRepo := NewSequenceRepository(tx)

	if err := fn(invoiceRepo, doRepo, paymentRepo, billingRepo, seqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunClientInvoicing inicia una transacción con los repos de facturación de
// cliente (confirmación y borrado tocan factura y contador a la vez).
func (r *TxRunner) RunClientInvoicing(ctx context.Context, fn func(
	invoiceRepo repository.ClientInvoiceRepository,
	seqRepo numbering.Repository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewClientInvoiceRepository(tx), NewSequenceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
