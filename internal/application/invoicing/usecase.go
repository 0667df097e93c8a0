// Package invoicing implementa el ciclo de vida de las facturas de proveedor:
// creación (agregando albaranes o como gasto directo), edición, confirmación
// con asignación de número de orden, borrado e intercambio de números.
package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arroyo-erp/arroyo-api/internal/application/deliveryorders"
	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/application/numbering"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/money"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// UseCase casos de uso de facturas de proveedor.
type UseCase struct {
	tx           TxRunner
	invoiceRepo  repository.InvoiceRepository
	doRepo       repository.DeliveryOrderRepository
	providerRepo repository.ProviderRepository
	paymentRepo  repository.PaymentRepository
	book         BookExporter
	pdf          PDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx TxRunner,
	invoiceRepo repository.InvoiceRepository,
	doRepo repository.DeliveryOrderRepository,
	providerRepo repository.ProviderRepository,
	paymentRepo repository.PaymentRepository,
	book BookExporter,
	pdf PDFGenerator,
) *UseCase {
	return &UseCase{
		tx:           tx,
		invoiceRepo:  invoiceRepo,
		doRepo:       doRepo,
		providerRepo: providerRepo,
		paymentRepo:  paymentRepo,
		book:         book,
		pdf:          pdf,
	}
}

// Create crea una factura en borrador.
//
// Las dos formas son variantes excluyentes: con albaranes los totales se
// calculan agregando sus importes y los albaranes quedan vinculados; sin
// albaranes los totales los aporta el caller y deben ser consistentes
// (total = taxBase + iva + re).
func (uc *UseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Concept == "" {
		return nil, domain.ErrParamsMissing
	}
	provider, err := uc.providerRepo.GetByID(ctx, in.Provider)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFound
	}

	invoice := &entity.Invoice{
		ID:           uuid.New().String(),
		Provider:     provider.ID,
		NameProvider: provider.Name,
		Concept:      in.Concept,
		DateRegister: time.Now().UnixMilli(),
	}

	if len(in.DeliveryOrders) == 0 {
		if in.Totals == nil {
			return nil, domain.ErrParamsMissing
		}
		totals, err := directTotals(in.Totals)
		if err != nil {
			return nil, err
		}
		invoice.Totals = *totals
		if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
			return nil, err
		}
		return uc.toResponse(invoice, nil), nil
	}

	var orders []*entity.DeliveryOrder
	err = uc.tx.RunInvoicing(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		doRepo repository.DeliveryOrderRepository,
		_ repository.PaymentRepository,
		_ repository.BillingRepository,
		_ numbering.Repository,
	) error {
		linker := deliveryorders.NewLinker(doRepo)
		var err error
		orders, err = linker.Resolve(ctx, in.DeliveryOrders)
		if err != nil {
			return err
		}
		invoice.DeliveryOrders = in.DeliveryOrders
		invoice.Totals = deliveryorders.Aggregate(orders)
		if err := invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}
		return linker.Link(ctx, invoice.ID, in.DeliveryOrders)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, orders), nil
}

// CreateExpense crea una factura de gasto directo de una sola entrada.
// Aquí iva y re son tasas que se aplican sobre la base imponible:
// iva = round(taxBase*iva), re = round(taxBase*re).
func (uc *UseCase) CreateExpense(ctx context.Context, in dto.CreateExpenseRequest) (*dto.InvoiceResponse, error) {
	if in.Provider == "" || in.Concept == "" || in.TaxBase == nil || in.IVA == nil {
		return nil, domain.ErrParamsMissing
	}
	provider, err := uc.providerRepo.GetByID(ctx, in.Provider)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFound
	}
	taxBase, err := money.FromFloat(*in.TaxBase)
	if err != nil {
		return nil, err
	}
	ivaRate, err := money.FromFloat(*in.IVA)
	if err != nil {
		return nil, err
	}
	taxBase = money.Round(taxBase)
	iva := money.Round(taxBase.Mul(ivaRate))
	re := decimal.Zero
	if in.Re != nil {
		reRate, err := money.FromFloat(*in.Re)
		if err != nil {
			return nil, err
		}
		re = money.Round(taxBase.Mul(reRate))
	}

	dateRegister := in.DateRegister
	if dateRegister == 0 {
		dateRegister = time.Now().UnixMilli()
	}
	invoice := &entity.Invoice{
		ID:           uuid.New().String(),
		Provider:     provider.ID,
		NameProvider: provider.Name,
		Concept:      in.Concept,
		NInvoice:     in.NInvoice,
		DateRegister: dateRegister,
		DateInvoice:  in.DateInvoice,
		Totals: entity.Totals{
			TaxBase: taxBase,
			IVA:     iva,
			Re:      re,
			Total:   money.Sum(taxBase, iva, re),
			Rate:    ivaRate,
		},
		Payment: entity.PaymentSnapshot{
			Type:        in.PaymentType,
			PaymentDate: in.PaymentDate,
		},
	}
	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, nil), nil
}

// Refresh recalcula los totales de una factura agregada desde sus albaranes
// (tras editar líneas de producto de un albarán ya facturado).
func (uc *UseCase) Refresh(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.Aggregated() {
		return uc.toResponse(invoice, nil), nil
	}
	orders, err := deliveryorders.NewLinker(uc.doRepo).Resolve(ctx, invoice.DeliveryOrders)
	if err != nil {
		return nil, err
	}
	invoice.Totals = deliveryorders.Aggregate(orders)
	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, orders), nil
}

func (uc *UseCase) find(ctx context.Context, id string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return invoice, nil
}

// directTotals valida los totales aportados por el caller para una factura
// sin albaranes: total = taxBase + iva + re (redondeado).
func directTotals(in *dto.TotalsResponse) (*entity.Totals, error) {
	expected := money.Sum(in.TaxBase, in.IVA, in.Re)
	if !money.Round(in.Total).Equal(expected) {
		return nil, domain.ErrParamNotValid
	}
	return &entity.Totals{
		TaxBase: money.Round(in.TaxBase),
		IVA:     money.Round(in.IVA),
		Re:      money.Round(in.Re),
		Total:   expected,
		Rate:    in.Rate,
	}, nil
}
