package repository

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
)

// InvoiceFilter filtros de listado de facturas.
type InvoiceFilter struct {
	Year     int
	Provider string
	// Solo facturas confirmadas (con nOrder) cuando es true.
	Confirmed bool
}

// InvoiceRepository persistencia de facturas de proveedor.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	// FindByPayment devuelve las facturas cuyo snapshot referencia el pago.
	FindByPayment(ctx context.Context, paymentID string) ([]*entity.Invoice, error)
	// UpdatePaymentSnapshot refresca la proyección del pago en una factura.
	UpdatePaymentSnapshot(ctx context.Context, invoiceID string, snapshot entity.PaymentSnapshot) error
}
