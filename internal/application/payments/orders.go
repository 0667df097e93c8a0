package payments

import (
	"context"
	"strconv"
	"strings"

	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// RefreshOrders recalcula el nOrder denormalizado de los pagos pendientes a
// partir del nOrder vigente de sus facturas. Se invoca tras un borrado o un
// intercambio de números, dentro de la misma transacción: los pagos nunca
// quedan mostrando números que ya no son los de sus facturas.
func RefreshOrders(
	ctx context.Context,
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
) error {
	pending, err := paymentRepo.FindUnpaid(ctx)
	if err != nil {
		return err
	}
	for _, payment := range pending {
		parts := make([]string, 0, len(payment.Invoices))
		for _, invoiceID := range payment.Invoices {
			invoice, err := invoiceRepo.GetByID(ctx, invoiceID)
			if err != nil {
				return err
			}
			if invoice == nil || invoice.NOrder == nil {
				continue
			}
			parts = append(parts, strconv.Itoa(*invoice.NOrder))
		}
		nOrder := strings.Join(parts, ", ")
		if nOrder == payment.NOrder {
			continue
		}
		payment.NOrder = nOrder
		if err := paymentRepo.Update(ctx, payment); err != nil {
			return err
		}
	}
	return nil
}
