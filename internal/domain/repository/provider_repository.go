package repository

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
)

// ProviderRepository persistencia de proveedores.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id string) (*entity.Provider, error)
	Update(ctx context.Context, provider *entity.Provider) error
	// Find devuelve los proveedores cuyo nombre contiene name (todos si vacío).
	Find(ctx context.Context, name string) ([]*entity.Provider, error)
	Exists(ctx context.Context, id string) (bool, error)
}
