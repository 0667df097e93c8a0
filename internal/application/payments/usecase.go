// Package payments gestiona el registro canónico de pagos y su propagación
// a las facturas que los referencian.
package payments

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// UseCase casos de uso de pagos.
type UseCase struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(paymentRepo repository.PaymentRepository, invoiceRepo repository.InvoiceRepository) *UseCase {
	return &UseCase{paymentRepo: paymentRepo, invoiceRepo: invoiceRepo}
}

// Confirm confirma la realización del pago y propaga los mismos campos a la
// proyección embebida de cada factura vinculada: el pago canónico es la
// única fuente de verdad, las facturas nunca divergen.
func (uc *UseCase) Confirm(ctx context.Context, id string, in dto.ConfirmPaymentRequest) error {
	if in.PaymentDate <= 0 {
		return domain.ErrDateNotValid
	}
	if in.Type == "" {
		return domain.ErrParamsMissing
	}
	payment, err := uc.find(ctx, id)
	if err != nil {
		return err
	}

	payment.PaymentDate = in.PaymentDate
	payment.Type = in.Type
	if in.NumCheque != "" {
		payment.NumCheque = in.NumCheque
	}
	payment.Paid = true
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return err
	}

	snapshot := entity.PaymentSnapshot{
		PaymentID:   payment.ID,
		PaymentDate: payment.PaymentDate,
		Type:        payment.Type,
		NumCheque:   payment.NumCheque,
		Paid:        true,
	}
	for _, invoiceID := range payment.Invoices {
		if err := uc.invoiceRepo.UpdatePaymentSnapshot(ctx, invoiceID, snapshot); err != nil {
			return err
		}
	}
	return nil
}

// Remove elimina el pago; las facturas que lo referenciaban vuelven a una
// proyección vacía.
func (uc *UseCase) Remove(ctx context.Context, id string) error {
	payment, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	for _, invoiceID := range payment.Invoices {
		if err := uc.invoiceRepo.UpdatePaymentSnapshot(ctx, invoiceID, entity.PaymentSnapshot{}); err != nil {
			return err
		}
	}
	return uc.paymentRepo.Delete(ctx, id)
}

// Merge funde varios pagos pendientes en uno solo (pago conjunto de varias
// facturas del mismo proveedor). Los pagos originales desaparecen y las
// facturas pasan a referenciar el pago resultante.
func (uc *UseCase) Merge(ctx context.Context, ids []string) (*dto.PaymentResponse, error) {
	if len(ids) < 2 {
		return nil, domain.ErrParamsMissing
	}
	merged, err := uc.find(ctx, ids[0])
	if err != nil {
		return nil, err
	}
	for _, id := range ids[1:] {
		p, err := uc.find(ctx, id)
		if err != nil {
			return nil, err
		}
		merged.Amount = merged.Amount.Add(p.Amount)
		merged.Invoices = append(merged.Invoices, p.Invoices...)
		merged.NOrder = merged.NOrder + ", " + p.NOrder
		if err := uc.paymentRepo.Delete(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	if err := uc.paymentRepo.Update(ctx, merged); err != nil {
		return nil, err
	}
	snapshot := entity.PaymentSnapshot{
		PaymentID:   merged.ID,
		PaymentDate: merged.PaymentDate,
		Type:        merged.Type,
		NumCheque:   merged.NumCheque,
		Paid:        merged.Paid,
	}
	for _, invoiceID := range merged.Invoices {
		if err := uc.invoiceRepo.UpdatePaymentSnapshot(ctx, invoiceID, snapshot); err != nil {
			return nil, err
		}
	}
	return toResponse(merged), nil
}

// Divide separa un pago conjunto en un pago por factura, la operación
// inversa a Merge. Cada pago resultante toma el importe de su factura; el
// pago original desaparece. Solo tiene sentido sobre pagos pendientes que
// cubren más de una factura.
func (uc *UseCase) Divide(ctx context.Context, id string) ([]dto.PaymentResponse, error) {
	payment, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Paid || len(payment.Invoices) < 2 {
		return nil, domain.ErrParamNotValid
	}

	out := make([]dto.PaymentResponse, 0, len(payment.Invoices))
	for _, invoiceID := range payment.Invoices {
		invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return nil, err
		}
		if invoice == nil {
			return nil, domain.ErrInvoiceNotFound
		}
		nOrder := ""
		if invoice.NOrder != nil {
			nOrder = strconv.Itoa(*invoice.NOrder)
		}
		p := &entity.Payment{
			ID:           uuid.New().String(),
			Provider:     payment.Provider,
			NameProvider: payment.NameProvider,
			PaymentDate:  payment.PaymentDate,
			Type:         payment.Type,
			Amount:       invoice.Totals.Total,
			Invoices:     []string{invoiceID},
			NOrder:       nOrder,
		}
		if err := uc.paymentRepo.Create(ctx, p); err != nil {
			return nil, err
		}
		err = uc.invoiceRepo.UpdatePaymentSnapshot(ctx, invoiceID, entity.PaymentSnapshot{
			PaymentID:   p.ID,
			PaymentDate: p.PaymentDate,
			Type:        p.Type,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *toResponse(p))
	}
	return out, uc.paymentRepo.Delete(ctx, payment.ID)
}

// FindUnpaid lista los pagos pendientes de realizar.
func (uc *UseCase) FindUnpaid(ctx context.Context) ([]dto.PaymentResponse, error) {
	payments, err := uc.paymentRepo.FindUnpaid(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, *toResponse(p))
	}
	return out, nil
}

func (uc *UseCase) find(ctx context.Context, id string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	return payment, nil
}

func toResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:           p.ID,
		Provider:     p.Provider,
		NameProvider: p.NameProvider,
		PaymentDate:  p.PaymentDate,
		Type:         p.Type,
		NumCheque:    p.NumCheque,
		Amount:       p.Amount,
		Paid:         p.Paid,
		Invoices:     p.Invoices,
		NOrder:       p.NOrder,
	}
}
