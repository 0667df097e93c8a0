package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

var _ repository.DeliveryOrderRepository = (*DeliveryOrderRepo)(nil)

// DeliveryOrderRepo implementación del puerto DeliveryOrderRepository sobre PostgreSQL (usable con pool o tx).
type DeliveryOrderRepo struct {
	q Querier
}

// NewDeliveryOrderRepository construye el adaptador de persistencia para albaranes. Pasar pool o tx (Querier).
func NewDeliveryOrderRepository(q Querier) *DeliveryOrderRepo {
	return &DeliveryOrderRepo{q: q}
}

// lineRecord forma JSONB de una línea de producto de albarán.
type lineRecord struct {
	ID       string          `json:"_id"`
	Product  string          `json:"product"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	IVA      decimal.Decimal `json:"iva"`
	Re       decimal.Decimal `json:"re"`
	TaxBase  decimal.Decimal `json:"taxBase"`
	Total    decimal.Decimal `json:"total"`
}

const deliveryOrderColumns = `id, provider, name_provider, date, note, products,
	tax_base, iva, re, total, invoice, n_order`

// Create persiste un nuevo albarán.
func (r *DeliveryOrderRepo) Create(ctx context.Context, do *entity.DeliveryOrder) error {
	products, err := marshalLines(do.Products)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO delivery_orders (` + deliveryOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		do.ID, do.Provider, do.NameProvider, do.Date, do.Note, products,
		do.Totals.TaxBase, do.Totals.IVA, do.Totals.Re, do.Totals.Total, do.Invoice, do.NOrder,
	)
	if err != nil {
		return fmt.Errorf("insert delivery order: %w", err)
	}
	return nil
}

// GetByID obtiene un albarán por ID. Devuelve nil si no existe.
func (r *DeliveryOrderRepo) GetByID(ctx context.Context, id string) (*entity.DeliveryOrder, error) {
	query := `SELECT ` + deliveryOrderColumns + ` FROM delivery_orders WHERE id = $1`
	do, err := scanDeliveryOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return do, nil
}

// GetByIDs devuelve los albaranes en el orden pedido; los ids que no
// resuelven simplemente no aparecen (el caller decide si eso es error).
func (r *DeliveryOrderRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.DeliveryOrder, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + deliveryOrderColumns + ` FROM delivery_orders WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get delivery orders: %w", err)
	}
	defer rows.Close()
	byID := make(map[string]*entity.DeliveryOrder, len(ids))
	for rows.Next() {
		do, err := scanDeliveryOrder(rows)
		if err != nil {
			return nil, err
		}
		byID[do.ID] = do
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	list := make([]*entity.DeliveryOrder, 0, len(ids))
	for _, id := range ids {
		if do, ok := byID[id]; ok {
			list = append(list, do)
		}
	}
	return list, nil
}

// Update actualiza un albarán existente, líneas incluidas.
func (r *DeliveryOrderRepo) Update(ctx context.Context, do *entity.DeliveryOrder) error {
	products, err := marshalLines(do.Products)
	if err != nil {
		return err
	}
	query := `
		UPDATE delivery_orders SET provider = $2, name_provider = $3, date = $4, note = $5,
			products = $6, tax_base = $7, iva = $8, re = $9, total = $10, invoice = $11, n_order = $12
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		do.ID, do.Provider, do.NameProvider, do.Date, do.Note, products,
		do.Totals.TaxBase, do.Totals.IVA, do.Totals.Re, do.Totals.Total, do.Invoice, do.NOrder,
	)
	if err != nil {
		return fmt.Errorf("update delivery order: %w", err)
	}
	return nil
}

// Delete elimina un albarán por ID.
func (r *DeliveryOrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM delivery_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery order: %w", err)
	}
	return nil
}

// FindFreeByProvider lista los albaranes sin factura de un proveedor, más recientes primero.
func (r *DeliveryOrderRepo) FindFreeByProvider(ctx context.Context, provider string) ([]*entity.DeliveryOrder, error) {
	query := `SELECT ` + deliveryOrderColumns + `
		FROM delivery_orders WHERE provider = $1 AND invoice IS NULL ORDER BY date DESC`
	return r.findAll(ctx, query, provider)
}

// FindInvoicedByProvider lista paginado los albaranes ya facturados de un
// proveedor, más recientes primero, junto al total de facturados.
func (r *DeliveryOrderRepo) FindInvoicedByProvider(ctx context.Context, provider string, limit, offset int) ([]*entity.DeliveryOrder, int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM delivery_orders WHERE provider = $1 AND invoice IS NOT NULL`, provider,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count invoiced delivery orders: %w", err)
	}
	query := `SELECT ` + deliveryOrderColumns + `
		FROM delivery_orders WHERE provider = $1 AND invoice IS NOT NULL
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	list, err := r.findAll(ctx, query, provider, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// CountFreeByProvider cuenta los albaranes sin factura de un proveedor.
func (r *DeliveryOrderRepo) CountFreeByProvider(ctx context.Context, provider string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM delivery_orders WHERE provider = $1 AND invoice IS NULL`, provider,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count free delivery orders: %w", err)
	}
	return count, nil
}

// SetInvoice fija (o limpia, con nil) la referencia a factura y el nOrder
// copiado de cada albarán indicado.
func (r *DeliveryOrderRepo) SetInvoice(ctx context.Context, ids []string, invoiceID *string, nOrder *int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx,
		`UPDATE delivery_orders SET invoice = $2, n_order = $3 WHERE id = ANY($1)`,
		ids, invoiceID, nOrder,
	)
	if err != nil {
		return fmt.Errorf("set delivery order invoice: %w", err)
	}
	return nil
}

func (r *DeliveryOrderRepo) findAll(ctx context.Context, query string, args ...any) ([]*entity.DeliveryOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find delivery orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryOrder
	for rows.Next() {
		do, err := scanDeliveryOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, do)
	}
	return list, rows.Err()
}

func scanDeliveryOrder(row pgx.Row) (*entity.DeliveryOrder, error) {
	var do entity.DeliveryOrder
	var products []byte
	err := row.Scan(
		&do.ID, &do.Provider, &do.NameProvider, &do.Date, &do.Note, &products,
		&do.Totals.TaxBase, &do.Totals.IVA, &do.Totals.Re, &do.Totals.Total, &do.Invoice, &do.NOrder,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan delivery order: %w", err)
	}
	if len(products) > 0 {
		var records []lineRecord
		if err := json.Unmarshal(products, &records); err != nil {
			return nil, fmt.Errorf("unmarshal delivery order products: %w", err)
		}
		for _, rec := range records {
			do.Products = append(do.Products, entity.DeliveryOrderProduct{
				ID: rec.ID, Product: rec.Product, Code: rec.Code, Name: rec.Name,
				Price: rec.Price, Quantity: rec.Quantity, IVA: rec.IVA, Re: rec.Re,
				TaxBase: rec.TaxBase, Total: rec.Total,
			})
		}
	}
	return &do, nil
}

func marshalLines(lines []entity.DeliveryOrderProduct) ([]byte, error) {
	records := make([]lineRecord, 0, len(lines))
	for _, l := range lines {
		records = append(records, lineRecord{
			ID: l.ID, Product: l.Product, Code: l.Code, Name: l.Name,
			Price: l.Price, Quantity: l.Quantity, IVA: l.IVA, Re: l.Re,
			TaxBase: l.TaxBase, Total: l.Total,
		})
	}
	out, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal delivery order products: %w", err)
	}
	return out, nil
}
