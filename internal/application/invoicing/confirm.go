package invoicing

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	appbilling "github.com/arroyo-erp/arroyo-api/internal/application/billing"
	"github.com/arroyo-erp/arroyo-api/internal/application/deliveryorders"
	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/application/numbering"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// Confirm confirma una factura en borrador: asigna el siguiente número de
// orden de su ámbito, crea el pago, copia el nOrder en sus albaranes y suma
// al agregado anual de facturación. Todo en una única transacción.
//
// Precondiciones: la factura debe tener fecha de factura de una edición
// previa (ErrDateNotValid si falta) y la petición debe traer tipo de pago
// (ErrParamsMissing si falta).
func (uc *UseCase) Confirm(ctx context.Context, id string, in dto.ConfirmInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Confirmed() {
		return nil, domain.ErrParamNotValid
	}
	if invoice.DateInvoice <= 0 {
		return nil, domain.ErrDateNotValid
	}
	if in.Type == "" {
		return nil, domain.ErrParamsMissing
	}

	paymentDate := in.PaymentDate
	if paymentDate == 0 {
		paymentDate = invoice.DateInvoice
	}

	err = uc.tx.RunInvoicing(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		doRepo repository.DeliveryOrderRepository,
		paymentRepo repository.PaymentRepository,
		billingRepo repository.BillingRepository,
		seqRepo numbering.Repository,
	) error {
		nOrder, err := numbering.NewAllocator(seqRepo).AssignNext(ctx, numbering.ScopeInvoices)
		if err != nil {
			return err
		}
		invoice.NOrder = &nOrder

		payment := &entity.Payment{
			ID:           uuid.New().String(),
			Provider:     invoice.Provider,
			NameProvider: invoice.NameProvider,
			PaymentDate:  paymentDate,
			Type:         in.Type,
			Amount:       invoice.Totals.Total,
			Invoices:     []string{invoice.ID},
			NOrder:       strconv.Itoa(nOrder),
		}
		if err := paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		invoice.Payment = entity.PaymentSnapshot{
			PaymentID:   payment.ID,
			PaymentDate: payment.PaymentDate,
			Type:        payment.Type,
		}

		if invoice.Aggregated() {
			linker := deliveryorders.NewLinker(doRepo)
			if err := linker.StampOrder(ctx, invoice.ID, invoice.DeliveryOrders, nOrder); err != nil {
				return err
			}
		}
		if err := appbilling.Add(ctx, billingRepo, invoice); err != nil {
			return err
		}
		return invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		invoice.NOrder = nil
		return nil, err
	}
	return uc.toResponse(invoice, nil), nil
}
