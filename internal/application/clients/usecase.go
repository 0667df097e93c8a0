// Package clients gestiona los clientes y sus facturas de venta. Las
// facturas de cliente numeran en su propio ámbito, independiente del de las
// facturas de proveedor.
package clients

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/application/numbering"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/money"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// TxRunner transacción para confirmar y eliminar facturas de cliente.
type TxRunner interface {
	RunClientInvoicing(ctx context.Context, fn func(
		invoiceRepo repository.ClientInvoiceRepository,
		seqRepo numbering.Repository,
	) error) error
}

// UseCase casos de uso de clientes y facturas de cliente.
type UseCase struct {
	tx          TxRunner
	clientRepo  repository.ClientRepository
	invoiceRepo repository.ClientInvoiceRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, clientRepo repository.ClientRepository, invoiceRepo repository.ClientInvoiceRepository) *UseCase {
	return &UseCase{tx: tx, clientRepo: clientRepo, invoiceRepo: invoiceRepo}
}

// ── Clientes ─────────────────────────────────────────────────────────────────

// Create da de alta un cliente.
func (uc *UseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrParamsMissing
	}
	client := &entity.Client{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Address:    in.Address,
		City:       in.City,
		PostalCode: in.PostalCode,
		Province:   in.Province,
		Phone:      in.Phone,
		Email:      in.Email,
		Note:       in.Note,
	}
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update edita un cliente existente.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.findClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		client.Name = in.Name
	}
	client.Address = in.Address
	client.City = in.City
	client.PostalCode = in.PostalCode
	client.Province = in.Province
	client.Phone = in.Phone
	client.Email = in.Email
	client.Note = in.Note
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Find lista clientes filtrados por nombre.
func (uc *UseCase) Find(ctx context.Context, name string) ([]dto.ClientResponse, error) {
	clients, err := uc.clientRepo.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// ── Facturas de cliente ──────────────────────────────────────────────────────

// CreateInvoice crea una factura de cliente en borrador.
func (uc *UseCase) CreateInvoice(ctx context.Context, in dto.CreateClientInvoiceRequest) (*dto.ClientInvoiceResponse, error) {
	client, err := uc.findClient(ctx, in.Client)
	if err != nil {
		return nil, err
	}
	date := in.Date
	if date == 0 {
		date = time.Now().UnixMilli()
	}
	invoice := &entity.ClientInvoice{
		ID:         uuid.New().String(),
		Client:     client.ID,
		NameClient: client.Name,
		Date:       date,
	}
	if in.Totals != nil {
		invoice.Totals = entity.Totals{
			TaxBase: money.Round(in.Totals.TaxBase),
			IVA:     money.Round(in.Totals.IVA),
			Re:      money.Round(in.Totals.Re),
			Total:   money.Sum(in.Totals.TaxBase, in.Totals.IVA, in.Totals.Re),
		}
	}
	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// EditInvoice edita datos y/o totales; al menos uno presente.
func (uc *UseCase) EditInvoice(ctx context.Context, id string, in dto.EditClientInvoiceRequest) (*dto.ClientInvoiceResponse, error) {
	if in.Date == nil && in.Totals == nil {
		return nil, domain.ErrParamsMissing
	}
	invoice, err := uc.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Date != nil {
		if *in.Date <= 0 {
			return nil, domain.ErrDateNotValid
		}
		invoice.Date = *in.Date
	}
	if in.Totals != nil {
		invoice.Totals = entity.Totals{
			TaxBase: money.Round(in.Totals.TaxBase),
			IVA:     money.Round(in.Totals.IVA),
			Re:      money.Round(in.Totals.Re),
			Total:   money.Sum(in.Totals.TaxBase, in.Totals.IVA, in.Totals.Re),
		}
	}
	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// ConfirmInvoice asigna el siguiente número del ámbito de facturas de
// cliente. El contador nunca se comparte con el de facturas de proveedor.
func (uc *UseCase) ConfirmInvoice(ctx context.Context, id string) (*dto.ClientInvoiceResponse, error) {
	invoice, err := uc.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Confirmed() {
		return nil, domain.ErrParamNotValid
	}
	if invoice.Date <= 0 {
		return nil, domain.ErrDateNotValid
	}
	err = uc.tx.RunClientInvoicing(ctx, func(
		invoiceRepo repository.ClientInvoiceRepository,
		seqRepo numbering.Repository,
	) error {
		nOrder, err := numbering.NewAllocator(seqRepo).AssignNext(ctx, numbering.ScopeClientInvoices)
		if err != nil {
			return err
		}
		invoice.NOrder = &nOrder
		return invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		invoice.NOrder = nil
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// DeleteInvoice elimina una factura de cliente; si estaba confirmada, los
// números posteriores de su ámbito bajan uno.
func (uc *UseCase) DeleteInvoice(ctx context.Context, id string) error {
	invoice, err := uc.findInvoice(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Paid {
		return domain.ErrInvoiceNoRemovable
	}
	return uc.tx.RunClientInvoicing(ctx, func(
		invoiceRepo repository.ClientInvoiceRepository,
		seqRepo numbering.Repository,
	) error {
		if err := invoiceRepo.Delete(ctx, invoice.ID); err != nil {
			return err
		}
		if invoice.Confirmed() {
			return numbering.NewAllocator(seqRepo).Decrement(ctx, numbering.ScopeClientInvoices, *invoice.NOrder)
		}
		return nil
	})
}

// InvoicesByYear lista las facturas de cliente de un año.
func (uc *UseCase) InvoicesByYear(ctx context.Context, year int) ([]dto.ClientInvoiceResponse, error) {
	if year <= 0 {
		return nil, domain.ErrDateNotValid
	}
	invoices, err := uc.invoiceRepo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, nil
}

func (uc *UseCase) findClient(ctx context.Context, id string) (*entity.Client, error) {
	if id == "" {
		return nil, domain.ErrParamsMissing
	}
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	return client, nil
}

func (uc *UseCase) findInvoice(ctx context.Context, id string) (*entity.ClientInvoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return invoice, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		Province:   c.Province,
		Phone:      c.Phone,
		Email:      c.Email,
		Note:       c.Note,
	}
}

func toInvoiceResponse(inv *entity.ClientInvoice) *dto.ClientInvoiceResponse {
	return &dto.ClientInvoiceResponse{
		ID:         inv.ID,
		Client:     inv.Client,
		NameClient: inv.NameClient,
		Date:       inv.Date,
		NOrder:     inv.NOrder,
		Total:      inv.Totals.Total,
		TaxBase:    inv.Totals.TaxBase,
		IVA:        inv.Totals.IVA,
		Paid:       inv.Paid,
	}
}
