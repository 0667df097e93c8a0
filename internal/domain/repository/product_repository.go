package repository

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
)

// ProductRepository persistencia del catálogo de productos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// GetByProviderAndCode devuelve nil si no existe (para validar unicidad).
	GetByProviderAndCode(ctx context.Context, provider, code string) (*entity.Product, error)
	FindByProvider(ctx context.Context, provider string) ([]*entity.Product, error)
	Exists(ctx context.Context, id string) (bool, error)
}
