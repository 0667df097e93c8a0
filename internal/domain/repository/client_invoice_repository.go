package repository

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
)

// ClientInvoiceRepository persistencia de facturas de cliente.
type ClientInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.ClientInvoice) error
	GetByID(ctx context.Context, id string) (*entity.ClientInvoice, error)
	Update(ctx context.Context, invoice *entity.ClientInvoice) error
	Delete(ctx context.Context, id string) error
	FindByYear(ctx context.Context, year int) ([]*entity.ClientInvoice, error)
	FindByClient(ctx context.Context, client string) ([]*entity.ClientInvoice, error)
}
