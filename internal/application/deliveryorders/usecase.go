// Package deliveryorders gestiona los albaranes: su ciclo de vida, las líneas
// de producto con recálculo de totales y la agregación hacia facturas.
package deliveryorders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/money"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// UseCase casos de uso de albaranes.
type UseCase struct {
	doRepo       repository.DeliveryOrderRepository
	providerRepo repository.ProviderRepository
	productRepo  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	doRepo repository.DeliveryOrderRepository,
	providerRepo repository.ProviderRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{doRepo: doRepo, providerRepo: providerRepo, productRepo: productRepo}
}

// Create crea un albarán vacío contra un proveedor.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateDeliveryOrderRequest) (*dto.DeliveryOrderResponse, error) {
	if in.Provider == "" {
		return nil, domain.ErrParamsMissing
	}
	provider, err := uc.providerRepo.GetByID(ctx, in.Provider)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFound
	}
	date := in.Date
	if date == 0 {
		date = time.Now().UnixMilli()
	}
	do := &entity.DeliveryOrder{
		ID:           uuid.New().String(),
		Provider:     provider.ID,
		NameProvider: provider.Name,
		Date:         date,
		Note:         in.Note,
		Products:     []entity.DeliveryOrderProduct{},
	}
	if err := uc.doRepo.Create(ctx, do); err != nil {
		return nil, err
	}
	return toResponse(do), nil
}

// Get devuelve un albarán por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.DeliveryOrderResponse, error) {
	do, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(do), nil
}

// Update edita fecha y/o nota del albarán.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateDeliveryOrderRequest) (*dto.DeliveryOrderResponse, error) {
	if in.Date == nil && in.Note == nil {
		return nil, domain.ErrParamsMissing
	}
	do, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Date != nil {
		if *in.Date <= 0 {
			return nil, domain.ErrDateNotValid
		}
		do.Date = *in.Date
	}
	if in.Note != nil {
		do.Note = *in.Note
	}
	if err := uc.doRepo.Update(ctx, do); err != nil {
		return nil, err
	}
	return toResponse(do), nil
}

// Delete elimina un albarán libre. Un albarán asignado a una factura no se
// puede eliminar: primero hay que eliminar o editar la factura.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	do, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if !do.Free() {
		return domain.ErrDeliveryOrderNoRemovable
	}
	return uc.doRepo.Delete(ctx, id)
}

// AddProduct añade una línea de producto y recalcula los totales.
func (uc *UseCase) AddProduct(ctx context.Context, id string, in dto.DeliveryOrderProductRequest) (*dto.DeliveryOrderResponse, error) {
	do, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	line, err := uc.buildLine(ctx, uuid.New().String(), in)
	if err != nil {
		return nil, err
	}
	do.Products = append(do.Products, *line)
	recomputeTotals(do)
	if err := uc.doRepo.Update(ctx, do); err != nil {
		return nil, err
	}
	return toResponse(do), nil
}

// UpdateProduct sustituye una línea existente y recalcula los totales.
func (uc *UseCase) UpdateProduct(ctx context.Context, id, lineID string, in dto.DeliveryOrderProductRequest) (*dto.DeliveryOrderResponse, error) {
	do, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range do.Products {
		if do.Products[i].ID == lineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrProductNotFound
	}
	line, err := uc.buildLine(ctx, lineID, in)
	if err != nil {
		return nil, err
	}
	do.Products[idx] = *line
	recomputeTotals(do)
	if err := uc.doRepo.Update(ctx, do); err != nil {
		return nil, err
	}
	return toResponse(do), nil
}

// DeleteProduct elimina una línea y recalcula los totales.
func (uc *UseCase) DeleteProduct(ctx context.Context, id, lineID string) (*dto.DeliveryOrderResponse, error) {
	do, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	kept := do.Products[:0]
	found := false
	for _, p := range do.Products {
		if p.ID == lineID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return nil, domain.ErrProductNotFound
	}
	do.Products = kept
	recomputeTotals(do)
	if err := uc.doRepo.Update(ctx, do); err != nil {
		return nil, err
	}
	return toResponse(do), nil
}

// Orders devuelve los albaranes de un proveedor: libres completos y
// facturados en formato corto paginado.
func (uc *UseCase) Orders(ctx context.Context, provider string, page dto.PageRequest) (*dto.OrdersResponse, error) {
	ok, err := uc.providerRepo.Exists(ctx, provider)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	page.DefaultPage()
	free, err := uc.doRepo.FindFreeByProvider(ctx, provider)
	if err != nil {
		return nil, err
	}
	invoiced, count, err := uc.doRepo.FindInvoicedByProvider(ctx, provider, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.OrdersResponse{
		Free:       make([]dto.DeliveryOrderResponse, 0, len(free)),
		InInvoices: dto.InInvoicesResponse{Count: count, Data: make([]dto.DeliveryOrderShortResponse, 0, len(invoiced))},
	}
	for _, do := range free {
		out.Free = append(out.Free, *toResponse(do))
	}
	for _, do := range invoiced {
		out.InInvoices.Data = append(out.InInvoices.Data, dto.DeliveryOrderShortResponse{
			ID:     do.ID,
			Date:   do.Date,
			Total:  do.Totals.Total,
			NOrder: do.NOrder,
		})
	}
	return out, nil
}

// CountFree devuelve el número de albaranes sin facturar del proveedor.
func (uc *UseCase) CountFree(ctx context.Context, provider string) (int, error) {
	return uc.doRepo.CountFreeByProvider(ctx, provider)
}

func (uc *UseCase) find(ctx context.Context, id string) (*entity.DeliveryOrder, error) {
	do, err := uc.doRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if do == nil {
		return nil, domain.ErrDeliveryOrderNotFound
	}
	return do, nil
}

// buildLine valida la petición y calcula los importes de la línea a partir
// del producto de catálogo (nombre, código y tasas se denormalizan).
func (uc *UseCase) buildLine(ctx context.Context, lineID string, in dto.DeliveryOrderProductRequest) (*entity.DeliveryOrderProduct, error) {
	if in.Product == "" || in.Price == nil || in.Quantity == nil {
		return nil, domain.ErrParamsMissing
	}
	price, err := money.FromFloat(*in.Price)
	if err != nil {
		return nil, err
	}
	quantity, err := money.FromFloat(*in.Quantity)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, in.Product)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	taxBase := money.Round(price.Mul(quantity))
	total := money.Round(taxBase.
		Add(taxBase.Mul(product.IVA)).
		Add(taxBase.Mul(product.Re)))
	return &entity.DeliveryOrderProduct{
		ID:       lineID,
		Product:  product.ID,
		Code:     product.Code,
		Name:     product.Name,
		Price:    price,
		Quantity: quantity,
		IVA:      product.IVA,
		Re:       product.Re,
		TaxBase:  taxBase,
		Total:    total,
	}, nil
}

// recomputeTotals recalcula los agregados del albarán desde sus líneas,
// redondeando una sola vez cada campo sumado.
func recomputeTotals(do *entity.DeliveryOrder) {
	taxBase := decimal.Zero
	iva := decimal.Zero
	re := decimal.Zero
	for _, p := range do.Products {
		taxBase = taxBase.Add(p.TaxBase)
		iva = iva.Add(p.TaxBase.Mul(p.IVA))
		re = re.Add(p.TaxBase.Mul(p.Re))
	}
	do.Totals.TaxBase = money.Round(taxBase)
	do.Totals.IVA = money.Round(iva)
	do.Totals.Re = money.Round(re)
	do.Totals.Total = money.Sum(taxBase, iva, re)
	do.Totals.Rate = decimal.Zero
}

func toResponse(do *entity.DeliveryOrder) *dto.DeliveryOrderResponse {
	out := &dto.DeliveryOrderResponse{
		ID:           do.ID,
		Provider:     do.Provider,
		NameProvider: do.NameProvider,
		Date:         do.Date,
		Note:         do.Note,
		Products:     make([]dto.DeliveryOrderProductResponse, 0, len(do.Products)),
		Totals: dto.TotalsResponse{
			TaxBase: do.Totals.TaxBase,
			IVA:     do.Totals.IVA,
			Re:      do.Totals.Re,
			Total:   do.Totals.Total,
			Rate:    do.Totals.Rate,
		},
		Invoice: do.Invoice,
		NOrder:  do.NOrder,
	}
	for _, p := range do.Products {
		out.Products = append(out.Products, dto.DeliveryOrderProductResponse{
			ID:       p.ID,
			Product:  p.Product,
			Code:     p.Code,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
			IVA:      p.IVA,
			Re:       p.Re,
			TaxBase:  p.TaxBase,
			Total:    p.Total,
		})
	}
	return out
}
