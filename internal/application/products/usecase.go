// Package products gestiona el catálogo de productos de los proveedores.
package products

import (
	"context"

	"github.com/google/uuid"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/money"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// UseCase casos de uso del catálogo.
type UseCase struct {
	productRepo  repository.ProductRepository
	providerRepo repository.ProviderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, providerRepo repository.ProviderRepository) *UseCase {
	return &UseCase{productRepo: productRepo, providerRepo: providerRepo}
}

// Create da de alta un producto. Nombre y tasas (iva, re, profit) son
// obligatorios; el código, si viene, debe ser único dentro del proveedor.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.IVA == nil || in.Re == nil || in.Profit == nil {
		return nil, domain.ErrProductMissingParams
	}
	provider, err := uc.providerRepo.GetByID(ctx, in.Provider)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFound
	}
	if in.Code != "" {
		existing, err := uc.productRepo.GetByProviderAndCode(ctx, in.Provider, in.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrProductCodeExists
		}
	}
	product := &entity.Product{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		Provider:     provider.ID,
		NameProvider: provider.Name,
		IVA:          *in.IVA,
		Re:           *in.Re,
		Profit:       *in.Profit,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toResponse(product), nil
}

// Update edita los campos del producto (no toca precio ni histórico).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Code != "" && in.Code != product.Code {
		existing, err := uc.productRepo.GetByProviderAndCode(ctx, product.Provider, in.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrProductCodeExists
		}
		product.Code = in.Code
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.IVA != nil {
		product.IVA = *in.IVA
	}
	if in.Re != nil {
		product.Re = *in.Re
	}
	if in.Profit != nil {
		product.Profit = *in.Profit
	}
	recomputePrices(product)
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toResponse(product), nil
}

// UpdatePrice actualiza el precio de compra: añade la entrada al histórico
// (nunca sobreescribe) y deriva coste y precio de venta de las tasas.
func (uc *UseCase) UpdatePrice(ctx context.Context, id string, in dto.UpdatePriceRequest) (*dto.ProductResponse, error) {
	if in.Price == nil || in.Date == nil {
		return nil, domain.ErrProductMissingUpdate
	}
	if *in.Date <= 0 {
		return nil, domain.ErrDateNotValid
	}
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	price, err := money.FromFloat(*in.Price)
	if err != nil {
		return nil, err
	}
	product.Price = money.Round(price)
	product.Prices = append(product.Prices, entity.PriceChange{Price: product.Price, Date: *in.Date})
	recomputePrices(product)
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toResponse(product), nil
}

// Get devuelve un producto por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(product), nil
}

// FindByProvider lista los productos de un proveedor.
func (uc *UseCase) FindByProvider(ctx context.Context, provider string) ([]dto.ProductResponse, error) {
	ok, err := uc.providerRepo.Exists(ctx, provider)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	products, err := uc.productRepo.FindByProvider(ctx, provider)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toResponse(p))
	}
	return out, nil
}

func (uc *UseCase) find(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// recomputePrices deriva coste (precio con impuestos) y precio de venta
// (coste con margen) del precio de compra vigente.
func recomputePrices(p *entity.Product) {
	if p.Price.IsZero() {
		return
	}
	p.Cost = money.Round(p.Price.
		Add(p.Price.Mul(p.IVA)).
		Add(p.Price.Mul(p.Re)))
	p.Sale = money.Round(p.Cost.Add(p.Cost.Mul(p.Profit)))
}

func toResponse(p *entity.Product) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Provider:     p.Provider,
		NameProvider: p.NameProvider,
		IVA:          p.IVA,
		Re:           p.Re,
		Profit:       p.Profit,
		Price:        p.Price,
		Cost:         p.Cost,
		Sale:         p.Sale,
	}
	for _, pc := range p.Prices {
		out.Prices = append(out.Prices, dto.PriceChangeResponse{Price: pc.Price, Date: pc.Date})
	}
	return out
}
