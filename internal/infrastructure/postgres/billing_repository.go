package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

var _ repository.BillingRepository = (*BillingRepo)(nil)

// BillingRepo implementación del puerto BillingRepository sobre PostgreSQL (usable con pool o tx).
type BillingRepo struct {
	q Querier
}

// NewBillingRepository construye el adaptador del agregado anual de facturación. Pasar pool o tx (Querier).
func NewBillingRepository(q Querier) *BillingRepo {
	return &BillingRepo{q: q}
}

const billingColumns = `id, provider, name_provider, year, annual, trimester1, trimester2, trimester3, trimester4`

// GetByProviderAndYear obtiene el agregado de un proveedor y año. Devuelve nil si no existe.
func (r *BillingRepo) GetByProviderAndYear(ctx context.Context, provider string, year int) (*entity.Billing, error) {
	query := `SELECT ` + billingColumns + ` FROM billings WHERE provider = $1 AND year = $2`
	var b entity.Billing
	err := r.q.QueryRow(ctx, query, provider, year).Scan(
		&b.ID, &b.Provider, &b.NameProvider, &b.Year, &b.Annual,
		&b.Trimesters[0], &b.Trimesters[1], &b.Trimesters[2], &b.Trimesters[3],
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get billing: %w", err)
	}
	return &b, nil
}

// Upsert inserta o reemplaza el agregado de un proveedor y año.
func (r *BillingRepo) Upsert(ctx context.Context, billing *entity.Billing) error {
	query := `
		INSERT INTO billings (` + billingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (provider, year) DO UPDATE SET
			name_provider = EXCLUDED.name_provider,
			annual = EXCLUDED.annual,
			trimester1 = EXCLUDED.trimester1,
			trimester2 = EXCLUDED.trimester2,
			trimester3 = EXCLUDED.trimester3,
			trimester4 = EXCLUDED.trimester4`
	_, err := r.q.Exec(ctx, query,
		billing.ID, billing.Provider, billing.NameProvider, billing.Year, billing.Annual,
		billing.Trimesters[0], billing.Trimesters[1], billing.Trimesters[2], billing.Trimesters[3],
	)
	if err != nil {
		return fmt.Errorf("upsert billing: %w", err)
	}
	return nil
}

// FindByYear lista los agregados de un año, mayor facturación anual primero.
func (r *BillingRepo) FindByYear(ctx context.Context, year int) ([]*entity.Billing, error) {
	query := `SELECT ` + billingColumns + ` FROM billings WHERE year = $1 ORDER BY annual DESC`
	rows, err := r.q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("find billings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Billing
	for rows.Next() {
		var b entity.Billing
		if err := rows.Scan(&b.ID, &b.Provider, &b.NameProvider, &b.Year, &b.Annual,
			&b.Trimesters[0], &b.Trimesters[1], &b.Trimesters[2], &b.Trimesters[3]); err != nil {
			return nil, fmt.Errorf("scan billing: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
