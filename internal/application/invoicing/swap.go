package invoicing

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/application/deliveryorders"
	"github.com/arroyo-erp/arroyo-api/internal/application/numbering"
	"github.com/arroyo-erp/arroyo-api/internal/application/payments"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// Swap intercambia los números de orden de dos facturas confirmadas del
// mismo ámbito y propaga el cambio al nOrder copiado en sus albaranes y al
// nOrder denormalizado de sus pagos pendientes.
func (uc *UseCase) Swap(ctx context.Context, idA, idB string) error {
	invoiceA, err := uc.find(ctx, idA)
	if err != nil {
		return err
	}
	invoiceB, err := uc.find(ctx, idB)
	if err != nil {
		return err
	}
	if !invoiceA.Confirmed() || !invoiceB.Confirmed() {
		return domain.ErrNotConfirmed
	}

	return uc.tx.RunInvoicing(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		doRepo repository.DeliveryOrderRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.BillingRepository,
		seqRepo numbering.Repository,
	) error {
		alloc := numbering.NewAllocator(seqRepo)
		if err := alloc.Swap(ctx, numbering.ScopeInvoices, invoiceA.ID, invoiceB.ID); err != nil {
			return err
		}
		linker := deliveryorders.NewLinker(doRepo)
		restamp := func(invoice *entity.Invoice, nOrder int) error {
			if !invoice.Aggregated() {
				return nil
			}
			return linker.StampOrder(ctx, invoice.ID, invoice.DeliveryOrders, nOrder)
		}
		if err := restamp(invoiceA, *invoiceB.NOrder); err != nil {
			return err
		}
		if err := restamp(invoiceB, *invoiceA.NOrder); err != nil {
			return err
		}
		return payments.RefreshOrders(ctx, paymentRepo, invoiceRepo)
	})
}
