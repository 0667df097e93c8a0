package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// priceRecord forma JSONB del histórico de precios.
type priceRecord struct {
	Price decimal.Decimal `json:"price"`
	Date  int64           `json:"date"`
}

const productColumns = `id, code, name, provider, name_provider, iva, re, profit, price, cost, sale, prices`

// Create persiste un nuevo producto con su histórico de precios.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	prices, err := marshalPrices(product.Prices)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.Provider, product.NameProvider,
		product.IVA, product.Re, product.Profit, product.Price, product.Cost, product.Sale, prices,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductCodeExists
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByProviderAndCode obtiene un producto por proveedor y código. Devuelve nil si no existe.
func (r *ProductRepo) GetByProviderAndCode(ctx context.Context, provider, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE provider = $1 AND code = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, provider, code))
}

// Update actualiza un producto existente, histórico de precios incluido.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	prices, err := marshalPrices(product.Prices)
	if err != nil {
		return err
	}
	query := `
		UPDATE products SET code = $2, name = $3, iva = $4, re = $5, profit = $6,
			price = $7, cost = $8, sale = $9, prices = $10
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.IVA, product.Re, product.Profit,
		product.Price, product.Cost, product.Sale, prices,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductCodeExists
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// FindByProvider lista los productos de un proveedor ordenados por nombre.
func (r *ProductRepo) FindByProvider(ctx context.Context, provider string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE provider = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, provider)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Exists indica si el producto existe.
func (r *ProductRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return exists, nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var prices []byte
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Provider, &p.NameProvider,
		&p.IVA, &p.Re, &p.Profit, &p.Price, &p.Cost, &p.Sale, &prices,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if len(prices) > 0 {
		var records []priceRecord
		if err := json.Unmarshal(prices, &records); err != nil {
			return nil, fmt.Errorf("unmarshal prices: %w", err)
		}
		for _, rec := range records {
			p.Prices = append(p.Prices, entity.PriceChange{Price: rec.Price, Date: rec.Date})
		}
	}
	return &p, nil
}

func marshalPrices(prices []entity.PriceChange) ([]byte, error) {
	records := make([]priceRecord, 0, len(prices))
	for _, pc := range prices {
		records = append(records, priceRecord{Price: pc.Price, Date: pc.Date})
	}
	out, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal prices: %w", err)
	}
	return out, nil
}
