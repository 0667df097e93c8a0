package invoicing

import (
	"context"
	"sort"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// Get devuelve una factura con sus albaranes expandidos.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	var orders []*entity.DeliveryOrder
	if invoice.Aggregated() {
		orders, err = uc.doRepo.GetByIDs(ctx, invoice.DeliveryOrders)
		if err != nil {
			return nil, err
		}
	}
	return uc.toResponse(invoice, orders), nil
}

// Find devuelve el listado corto de facturas de un año, opcionalmente
// filtrado por proveedor, ordenado por número de orden descendente.
func (uc *UseCase) Find(ctx context.Context, filter repository.InvoiceFilter) ([]dto.InvoiceShortResponse, error) {
	if filter.Year <= 0 {
		return nil, domain.ErrDateNotValid
	}
	invoices, err := uc.invoiceRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.Slice(invoices, func(i, j int) bool {
		ni, nj := invoices[i].NOrder, invoices[j].NOrder
		switch {
		case ni == nil && nj == nil:
			return invoices[i].DateRegister > invoices[j].DateRegister
		case ni == nil:
			return true
		case nj == nil:
			return false
		default:
			return *ni > *nj
		}
	})
	out := make([]dto.InvoiceShortResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.InvoiceShortResponse{
			ID:           inv.ID,
			NOrder:       inv.NOrder,
			NInvoice:     inv.NInvoice,
			NameProvider: inv.NameProvider,
			Concept:      inv.Concept,
			DateInvoice:  inv.DateInvoice,
			Total:        inv.Totals.Total,
			Paid:         inv.Payment.Paid,
		})
	}
	return out, nil
}

// ExportBook genera el libro de facturas confirmadas de un año (ODS).
func (uc *UseCase) ExportBook(ctx context.Context, year int) ([]byte, error) {
	if year <= 0 {
		return nil, domain.ErrDateNotValid
	}
	invoices, err := uc.invoiceRepo.Find(ctx, repository.InvoiceFilter{Year: year, Confirmed: true})
	if err != nil {
		return nil, err
	}
	sort.Slice(invoices, func(i, j int) bool { return *invoices[i].NOrder < *invoices[j].NOrder })
	return uc.book.InvoiceBook(year, invoices)
}

// ExportPDF genera el PDF de una factura.
func (uc *UseCase) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	invoice, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	provider, err := uc.providerRepo.GetByID(ctx, invoice.Provider)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFound
	}
	var orders []*entity.DeliveryOrder
	if invoice.Aggregated() {
		orders, err = uc.doRepo.GetByIDs(ctx, invoice.DeliveryOrders)
		if err != nil {
			return nil, err
		}
	}
	return uc.pdf.GenerateInvoicePDF(invoice, provider, orders)
}

func (uc *UseCase) toResponse(invoice *entity.Invoice, orders []*entity.DeliveryOrder) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:           invoice.ID,
		Provider:     invoice.Provider,
		NameProvider: invoice.NameProvider,
		Concept:      invoice.Concept,
		NInvoice:     invoice.NInvoice,
		Totals: dto.TotalsResponse{
			TaxBase: invoice.Totals.TaxBase,
			IVA:     invoice.Totals.IVA,
			Re:      invoice.Totals.Re,
			Total:   invoice.Totals.Total,
			Rate:    invoice.Totals.Rate,
		},
		DateRegister: invoice.DateRegister,
		DateInvoice:  invoice.DateInvoice,
		NOrder:       invoice.NOrder,
	}
	if invoice.Payment != (entity.PaymentSnapshot{}) {
		out.Payment = &dto.PaymentSnapshotResponse{
			PaymentID:   invoice.Payment.PaymentID,
			PaymentDate: invoice.Payment.PaymentDate,
			Type:        invoice.Payment.Type,
			NumCheque:   invoice.Payment.NumCheque,
			Paid:        invoice.Payment.Paid,
		}
	}
	for _, do := range orders {
		out.DeliveryOrders = append(out.DeliveryOrders, dto.DeliveryOrderResponse{
			ID:           do.ID,
			Provider:     do.Provider,
			NameProvider: do.NameProvider,
			Date:         do.Date,
			Totals: dto.TotalsResponse{
				TaxBase: do.Totals.TaxBase,
				IVA:     do.Totals.IVA,
				Re:      do.Totals.Re,
				Total:   do.Totals.Total,
			},
			Invoice: do.Invoice,
			NOrder:  do.NOrder,
		})
	}
	return out
}
