package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/menu"
	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

// VariantUseCase presentaciones de un producto (tamaños, porciones).
type VariantUseCase struct {
	repo     repository.VariantRepository
	products repository.ProductRepository
	cache    ports.MenuCache
}

func NewVariantUseCase(repo repository.VariantRepository, products repository.ProductRepository, cache ports.MenuCache) *VariantUseCase {
	return &VariantUseCase{repo: repo, products: products, cache: cache}
}

// Create agrega una variante a un producto del restaurante.
func (uc *VariantUseCase) Create(ctx context.Context, restaurantID, productID string, in dto.VariantRequest) (*dto.VariantResponse, error) {
	p, err := uc.products.GetByID(ctx, restaurantID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateVariant(in); err != nil {
		return nil, err
	}
	now := time.Now()
	v := &entity.Variant{
		ID:           uuid.New().String(),
		ProductID:    productID,
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(in.Name),
		Price:        in.Price,
		Position:     in.Position,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	out := toVariantResponse(v)
	return &out, nil
}

func (uc *VariantUseCase) List(ctx context.Context, restaurantID, productID string) ([]dto.VariantResponse, error) {
	list, err := uc.repo.ListByProduct(ctx, restaurantID, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVariantResponse(v))
	}
	return out, nil
}

func (uc *VariantUseCase) Update(ctx context.Context, restaurantID, id string, in dto.VariantRequest) (*dto.VariantResponse, error) {
	v, err := uc.repo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateVariant(in); err != nil {
		return nil, err
	}
	v.Name = strings.TrimSpace(in.Name)
	v.Price = in.Price
	v.Position = in.Position
	v.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	out := toVariantResponse(v)
	return &out, nil
}

func (uc *VariantUseCase) Delete(ctx context.Context, restaurantID, id string) error {
	if err := uc.repo.Delete(ctx, restaurantID, id); err != nil {
		return err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	return nil
}

func validateVariant(in dto.VariantRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name es obligatorio")
	}
	if in.Price.IsNegative() {
		return invalid("price no puede ser negativo")
	}
	return nil
}

func toVariantResponse(v *entity.Variant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Name:      v.Name,
		Price:     v.Price,
		Position:  v.Position,
	}
}
