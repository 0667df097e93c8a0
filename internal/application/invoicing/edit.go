package invoicing

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
)

// Edit modifica datos y/o totales de una factura, en borrador o confirmada.
// Al menos uno de los dos bloques debe estar presente. Los totales solo son
// editables en facturas sin albaranes: en las agregadas se recalculan con
// Refresh y cualquier intento de fijar totales a mano es un parámetro inválido.
//
// La operación es idempotente: aplicar dos veces la misma edición deja los
// mismos importes almacenados.
func (uc *UseCase) Edit(ctx context.Context, id string, in dto.EditInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Data == nil && in.Totals == nil {
		return nil, domain.ErrParamsMissing
	}
	invoice, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Data != nil {
		if in.Data.NInvoice != nil {
			invoice.NInvoice = *in.Data.NInvoice
		}
		if in.Data.Concept != nil {
			if *in.Data.Concept == "" {
				return nil, domain.ErrParamsMissing
			}
			invoice.Concept = *in.Data.Concept
		}
		if in.Data.DateRegister != nil {
			if *in.Data.DateRegister <= 0 {
				return nil, domain.ErrDateNotValid
			}
			invoice.DateRegister = *in.Data.DateRegister
		}
		if in.Data.DateInvoice != nil {
			if *in.Data.DateInvoice <= 0 {
				return nil, domain.ErrDateNotValid
			}
			invoice.DateInvoice = *in.Data.DateInvoice
		}
	}

	if in.Totals != nil {
		if invoice.Aggregated() {
			return nil, domain.ErrParamNotValid
		}
		totals, err := directTotals(in.Totals)
		if err != nil {
			return nil, err
		}
		invoice.Totals = *totals
	}

	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, nil), nil
}
