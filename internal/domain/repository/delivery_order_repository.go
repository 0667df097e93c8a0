package repository

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
)

// DeliveryOrderRepository persistencia de albaranes.
type DeliveryOrderRepository interface {
	Create(ctx context.Context, do *entity.DeliveryOrder) error
	GetByID(ctx context.Context, id string) (*entity.DeliveryOrder, error)
	// GetByIDs devuelve los albaranes en el orden pedido; si alguno no existe
	// el slice devuelto es más corto que ids (el caller decide si es error).
	GetByIDs(ctx context.Context, ids []string) ([]*entity.DeliveryOrder, error)
	Update(ctx context.Context, do *entity.DeliveryOrder) error
	Delete(ctx context.Context, id string) error
	FindFreeByProvider(ctx context.Context, provider string) ([]*entity.DeliveryOrder, error)
	FindInvoicedByProvider(ctx context.Context, provider string, limit, offset int) ([]*entity.DeliveryOrder, int, error)
	CountFreeByProvider(ctx context.Context, provider string) (int, error)
	// SetInvoice fija (o limpia, con nil) la referencia a factura y el nOrder
	// copiado de cada albarán indicado.
	SetInvoice(ctx context.Context, ids []string, invoiceID *string, nOrder *int) error
}
