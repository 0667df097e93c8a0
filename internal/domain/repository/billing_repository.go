package repository

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
)

// BillingRepository persistencia del agregado anual de facturación.
type BillingRepository interface {
	GetByProviderAndYear(ctx context.Context, provider string, year int) (*entity.Billing, error)
	Upsert(ctx context.Context, billing *entity.Billing) error
	FindByYear(ctx context.Context, year int) ([]*entity.Billing, error)
}
