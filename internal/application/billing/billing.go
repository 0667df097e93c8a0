// Package billing mantiene el agregado anual de facturación por proveedor:
// suma al confirmar una factura, resta al eliminar una confirmada y permite
// recalcular el año completo desde las facturas.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/money"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// trimester devuelve el índice 0..3 del trimestre natural de la fecha.
func trimester(dateMillis int64) int {
	month := time.UnixMilli(dateMillis).UTC().Month()
	return (int(month) - 1) / 3
}

func year(dateMillis int64) int {
	return time.UnixMilli(dateMillis).UTC().Year()
}

// Add suma el total de una factura confirmada al agregado de su año.
func Add(ctx context.Context, repo repository.BillingRepository, invoice *entity.Invoice) error {
	return apply(ctx, repo, invoice, invoice.Totals.Total)
}

// Subtract resta el total de una factura confirmada del agregado de su año.
func Subtract(ctx context.Context, repo repository.BillingRepository, invoice *entity.Invoice) error {
	return apply(ctx, repo, invoice, invoice.Totals.Total.Neg())
}

func apply(ctx context.Context, repo repository.BillingRepository, invoice *entity.Invoice, amount decimal.Decimal) error {
	y := year(invoice.DateInvoice)
	b, err := repo.GetByProviderAndYear(ctx, invoice.Provider, y)
	if err != nil {
		return err
	}
	if b == nil {
		b = &entity.Billing{
			ID:           uuid.New().String(),
			Provider:     invoice.Provider,
			NameProvider: invoice.NameProvider,
			Year:         y,
		}
	}
	t := trimester(invoice.DateInvoice)
	b.Trimesters[t] = money.Round(b.Trimesters[t].Add(amount))
	b.Annual = money.Round(b.Annual.Add(amount))
	return repo.Upsert(ctx, b)
}

// ByYear lista los agregados de un año, mayor facturación anual primero.
func ByYear(ctx context.Context, repo repository.BillingRepository, y int) ([]dto.BillingResponse, error) {
	billings, err := repo.FindByYear(ctx, y)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillingResponse, 0, len(billings))
	for _, b := range billings {
		out = append(out, dto.BillingResponse{
			ID:           b.ID,
			Provider:     b.Provider,
			NameProvider: b.NameProvider,
			Year:         b.Year,
			Annual:       b.Annual,
			Trimesters:   b.Trimesters,
		})
	}
	return out, nil
}

// Refresh recalcula el agregado de un proveedor y año desde sus facturas
// confirmadas (fuente de verdad ante cualquier deriva).
func Refresh(
	ctx context.Context,
	billingRepo repository.BillingRepository,
	invoiceRepo repository.InvoiceRepository,
	provider, nameProvider string,
	y int,
) error {
	invoices, err := invoiceRepo.Find(ctx, repository.InvoiceFilter{Year: y, Provider: provider, Confirmed: true})
	if err != nil {
		return err
	}
	b, err := billingRepo.GetByProviderAndYear(ctx, provider, y)
	if err != nil {
		return err
	}
	if b == nil {
		b = &entity.Billing{
			ID:           uuid.New().String(),
			Provider:     provider,
			NameProvider: nameProvider,
			Year:         y,
		}
	}
	var trimesters [4]decimal.Decimal
	annual := decimal.Zero
	for _, inv := range invoices {
		t := trimester(inv.DateInvoice)
		trimesters[t] = trimesters[t].Add(inv.Totals.Total)
		annual = annual.Add(inv.Totals.Total)
	}
	for i := range trimesters {
		b.Trimesters[i] = money.Round(trimesters[i])
	}
	b.Annual = money.Round(annual)
	return billingRepo.Upsert(ctx, b)
}
