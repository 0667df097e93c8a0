package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

// ProviderRepo implementación del puerto ProviderRepository sobre PostgreSQL (usable con pool o tx).
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador de persistencia para proveedores. Pasar pool o tx (Querier).
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

const providerColumns = `id, name, business_name, cif, address, city, postal_code, province, phone, email, note`

// Create persiste un nuevo proveedor.
func (r *ProviderRepo) Create(ctx context.Context, provider *entity.Provider) error {
	query := `
		INSERT INTO providers (` + providerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		provider.ID, provider.Name, provider.BusinessName, provider.CIF, provider.Address,
		provider.City, provider.PostalCode, provider.Province, provider.Phone, provider.Email, provider.Note,
	)
	if err != nil {
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. Devuelve nil si no existe.
func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`
	var p entity.Provider
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.BusinessName, &p.CIF, &p.Address,
		&p.City, &p.PostalCode, &p.Province, &p.Phone, &p.Email, &p.Note,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return &p, nil
}

// Update actualiza un proveedor existente.
func (r *ProviderRepo) Update(ctx context.Context, provider *entity.Provider) error {
	query := `
		UPDATE providers SET name = $2, business_name = $3, cif = $4, address = $5, city = $6,
			postal_code = $7, province = $8, phone = $9, email = $10, note = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		provider.ID, provider.Name, provider.BusinessName, provider.CIF, provider.Address,
		provider.City, provider.PostalCode, provider.Province, provider.Phone, provider.Email, provider.Note,
	)
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	return nil
}

// Find devuelve los proveedores cuyo nombre contiene name (todos si vacío).
// El orden alfabético en español lo aplica el caso de uso.
func (r *ProviderRepo) Find(ctx context.Context, name string) ([]*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE $1 = '' OR name ILIKE '%' || $1 || '%'`
	rows, err := r.q.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("find providers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Provider
	for rows.Next() {
		var p entity.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.BusinessName, &p.CIF, &p.Address,
			&p.City, &p.PostalCode, &p.Province, &p.Phone, &p.Email, &p.Note); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Exists indica si el proveedor existe.
func (r *ProviderRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM providers WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists provider: %w", err)
	}
	return exists, nil
}
