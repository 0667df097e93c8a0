package deliveryorders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/money"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// Aggregate pliega los importes de N albaranes en los totales de su factura.
// Cada campo se suma sobre todos los albaranes y se redondea una sola vez.
// Rate no se suma: solo tiene significado en facturas de gasto directo, así
// que con albaranes presentes queda a cero.
func Aggregate(orders []*entity.DeliveryOrder) entity.Totals {
	taxBase := make([]decimal.Decimal, 0, len(orders))
	iva := make([]decimal.Decimal, 0, len(orders))
	re := make([]decimal.Decimal, 0, len(orders))
	total := make([]decimal.Decimal, 0, len(orders))
	for _, o := range orders {
		taxBase = append(taxBase, o.Totals.TaxBase)
		iva = append(iva, o.Totals.IVA)
		re = append(re, o.Totals.Re)
		total = append(total, o.Totals.Total)
	}
	return entity.Totals{
		TaxBase: money.Sum(taxBase...),
		IVA:     money.Sum(iva...),
		Re:      money.Sum(re...),
		Total:   money.Sum(total...),
		Rate:    decimal.Zero,
	}
}

// Linker mantiene las referencias albarán ↔ factura.
// Se construye sobre el repositorio de la transacción en curso para que el
// vínculo y el resto de la mutación sean atómicos.
type Linker struct {
	repo repository.DeliveryOrderRepository
}

// NewLinker construye el enlazador sobre un repositorio (pool o tx).
func NewLinker(repo repository.DeliveryOrderRepository) *Linker {
	return &Linker{repo: repo}
}

// Resolve carga los albaranes indicados; falla con ErrDeliveryOrderNotFound
// si alguno no existe.
func (l *Linker) Resolve(ctx context.Context, ids []string) ([]*entity.DeliveryOrder, error) {
	orders, err := l.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(orders) != len(ids) {
		return nil, domain.ErrDeliveryOrderNotFound
	}
	return orders, nil
}

// Link asigna los albaranes a la factura. Un albarán pertenece como mucho a
// una factura: si alguno ya está asignado la operación falla entera, sin
// repuntear la referencia existente.
func (l *Linker) Link(ctx context.Context, invoiceID string, ids []string) error {
	orders, err := l.Resolve(ctx, ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.Invoice != nil {
			return domain.ErrDeliveryOrderInvoiced
		}
	}
	return l.repo.SetInvoice(ctx, ids, &invoiceID, nil)
}

// Unlink devuelve los albaranes al estado libre: limpia la referencia a la
// factura y el nOrder copiado.
func (l *Linker) Unlink(ctx context.Context, ids []string) error {
	return l.repo.SetInvoice(ctx, ids, nil, nil)
}

// StampOrder copia el nOrder de la factura confirmada en sus albaranes.
func (l *Linker) StampOrder(ctx context.Context, invoiceID string, ids []string, nOrder int) error {
	return l.repo.SetInvoice(ctx, ids, &invoiceID, &nOrder)
}
