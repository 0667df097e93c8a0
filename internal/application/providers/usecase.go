// Package providers gestiona los proveedores.
package providers

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// UseCase casos de uso de proveedores.
type UseCase struct {
	repo     repository.ProviderRepository
	collator *collate.Collator
}

// NewUseCase construye el caso de uso. El listado ordena por nombre con
// colación española (Ñ, acentos), como espera el frontend.
func NewUseCase(repo repository.ProviderRepository) *UseCase {
	return &UseCase{
		repo:     repo,
		collator: collate.New(language.Spanish, collate.IgnoreCase),
	}
}

// Create da de alta un proveedor.
func (uc *UseCase) Create(ctx context.Context, in dto.ProviderRequest) (*dto.ProviderResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrParamsMissing
	}
	provider := &entity.Provider{
		ID:           uuid.New().String(),
		Name:         in.Name,
		BusinessName: in.BusinessName,
		CIF:          in.CIF,
		Address:      in.Address,
		City:         in.City,
		PostalCode:   in.PostalCode,
		Province:     in.Province,
		Phone:        in.Phone,
		Email:        in.Email,
		Note:         in.Note,
	}
	if err := uc.repo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return toResponse(provider), nil
}

// Update edita un proveedor existente.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.ProviderRequest) (*dto.ProviderResponse, error) {
	provider, err := uc.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		provider.Name = in.Name
	}
	provider.BusinessName = in.BusinessName
	provider.CIF = in.CIF
	provider.Address = in.Address
	provider.City = in.City
	provider.PostalCode = in.PostalCode
	provider.Province = in.Province
	provider.Phone = in.Phone
	provider.Email = in.Email
	provider.Note = in.Note
	if err := uc.repo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return toResponse(provider), nil
}

// Get devuelve un proveedor por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProviderResponse, error) {
	provider, err := uc.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(provider), nil
}

// Find lista proveedores filtrados por nombre, en orden alfabético español.
func (uc *UseCase) Find(ctx context.Context, name string) ([]dto.ProviderShortResponse, error) {
	providers, err := uc.repo.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	sort.Slice(providers, func(i, j int) bool {
		return uc.collator.CompareString(providers[i].Name, providers[j].Name) < 0
	})
	out := make([]dto.ProviderShortResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, dto.ProviderShortResponse{ID: p.ID, Name: p.Name, Note: p.Note})
	}
	return out, nil
}

func (uc *UseCase) findByID(ctx context.Context, id string) (*entity.Provider, error) {
	provider, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFound
	}
	return provider, nil
}

func toResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{
		ID:           p.ID,
		Name:         p.Name,
		BusinessName: p.BusinessName,
		CIF:          p.CIF,
		Address:      p.Address,
		City:         p.City,
		PostalCode:   p.PostalCode,
		Province:     p.Province,
		Phone:        p.Phone,
		Email:        p.Email,
		Note:         p.Note,
	}
}
