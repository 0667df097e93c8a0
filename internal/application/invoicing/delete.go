package invoicing

import (
	"context"

	appbilling "github.com/arroyo-erp/arroyo-api/internal/application/billing"
	"github.com/arroyo-erp/arroyo-api/internal/application/deliveryorders"
	"github.com/arroyo-erp/arroyo-api/internal/application/numbering"
	"github.com/arroyo-erp/arroyo-api/internal/application/payments"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// Delete elimina una factura. Sus albaranes vuelven al estado libre y, si la
// factura estaba confirmada, los números de orden posteriores bajan uno, el
// pago se elimina (o se desvincula si cubre más facturas) y el agregado anual
// se ajusta. Una factura con el pago ya realizado no se puede eliminar.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	invoice, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Payment.Paid {
		return domain.ErrInvoiceNoRemovable
	}

	return uc.tx.RunInvoicing(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		doRepo repository.DeliveryOrderRepository,
		paymentRepo repository.PaymentRepository,
		billingRepo repository.BillingRepository,
		seqRepo numbering.Repository,
	) error {
		if invoice.Aggregated() {
			linker := deliveryorders.NewLinker(doRepo)
			if err := linker.Unlink(ctx, invoice.DeliveryOrders); err != nil {
				return err
			}
		}

		if invoice.Confirmed() {
			if err := invoiceRepo.Delete(ctx, invoice.ID); err != nil {
				return err
			}
			alloc := numbering.NewAllocator(seqRepo)
			if err := alloc.Decrement(ctx, numbering.ScopeInvoices, *invoice.NOrder); err != nil {
				return err
			}
			if err := detachPayment(ctx, paymentRepo, invoiceRepo, invoice.Payment.PaymentID, invoice.ID); err != nil {
				return err
			}
			if err := payments.RefreshOrders(ctx, paymentRepo, invoiceRepo); err != nil {
				return err
			}
			return appbilling.Subtract(ctx, billingRepo, invoice)
		}
		return invoiceRepo.Delete(ctx, invoice.ID)
	})
}

// detachPayment quita la factura del pago canónico; si era la única que
// cubría, elimina el pago.
func detachPayment(
	ctx context.Context,
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentID, invoiceID string,
) error {
	if paymentID == "" {
		return nil
	}
	payment, err := paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return nil
	}
	kept := payment.Invoices[:0]
	for _, id := range payment.Invoices {
		if id != invoiceID {
			kept = append(kept, id)
		}
	}
	payment.Invoices = kept
	if len(payment.Invoices) == 0 {
		return paymentRepo.Delete(ctx, payment.ID)
	}
	return paymentRepo.Update(ctx, payment)
}
