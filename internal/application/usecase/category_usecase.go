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

// CategoryUseCase CRUD de categorías. Toda mutación invalida el menú cacheado.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache ports.MenuCache
}

// NewCategoryUseCase construye el caso de uso. cache puede ser nil.
func NewCategoryUseCase(repo repository.CategoryRepository, cache ports.MenuCache) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, cache: cache}
}

// Create agrega la categoría al final si no se indica posición.
func (uc *CategoryUseCase) Create(ctx context.Context, restaurantID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name es obligatorio")
	}
	position := 0
	if in.Position != nil {
		position = *in.Position
	} else {
		existing, err := uc.repo.ListByRestaurant(ctx, restaurantID, false)
		if err != nil {
			return nil, err
		}
		position = len(existing)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	c := &entity.Category{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Name:         name,
		Description:  in.Description,
		Position:     position,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	out := toCategoryResponse(c)
	return &out, nil
}

// List devuelve todas las categorías (activas e inactivas) por posición.
func (uc *CategoryUseCase) List(ctx context.Context, restaurantID string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListByRestaurant(ctx, restaurantID, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Update reemplaza nombre y descripción; posición y estado solo si vienen.
func (uc *CategoryUseCase) Update(ctx context.Context, restaurantID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name es obligatorio")
	}
	c.Name = name
	c.Description = in.Description
	if in.Position != nil {
		c.Position = *in.Position
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	out := toCategoryResponse(c)
	return &out, nil
}

// Delete elimina la categoría y, en cascada, sus productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, restaurantID, id string) error {
	if err := uc.repo.Delete(ctx, restaurantID, id); err != nil {
		return err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	return nil
}

// Reorder fija el orden; ids debe contener exactamente las categorías del restaurante.
func (uc *CategoryUseCase) Reorder(ctx context.Context, restaurantID string, ids []string) error {
	existing, err := uc.repo.ListByRestaurant(ctx, restaurantID, false)
	if err != nil {
		return err
	}
	if len(ids) != len(existing) {
		return invalid("ids debe incluir todas las categorías")
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.ID] = true
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known[id] || seen[id] {
			return invalid("ids contiene categorías desconocidas o repetidas")
		}
		seen[id] = true
	}
	if err := uc.repo.Reorder(ctx, restaurantID, ids); err != nil {
		return err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Position:    c.Position,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}
