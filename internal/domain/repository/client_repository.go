package repository

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
)

// ClientRepository persistencia de clientes.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Find(ctx context.Context, name string) ([]*entity.Client, error)
	Exists(ctx context.Context, id string) (bool, error)
}
