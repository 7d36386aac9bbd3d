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

const maxTags = 10

// ProductUseCase casos de uso CRUD para productos de la carta.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	variants   repository.VariantRepository
	storage    ports.FileStorage
	cache      ports.MenuCache
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	variants repository.VariantRepository,
	storage ports.FileStorage,
	cache ports.MenuCache,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, variants: variants, storage: storage, cache: cache}
}

// Create crea un producto en una categoría del mismo restaurante. Por defecto queda disponible.
func (uc *ProductUseCase) Create(ctx context.Context, restaurantID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, restaurantID, in); err != nil {
		return nil, err
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		CategoryID:   in.CategoryID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		IsAvailable:  available,
		IsFeatured:   in.IsFeatured,
		Position:     in.Position,
		Tags:         normalizeTags(in.Tags),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	out := toProductResponse(p, nil)
	return &out, nil
}

// Get obtiene un producto con sus variantes.
func (uc *ProductUseCase) Get(ctx context.Context, restaurantID, id string) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	variants, err := uc.variants.ListByProduct(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p, variants)
	return &out, nil
}

// List lista productos del restaurante; categoryID vacío = todas las categorías.
func (uc *ProductUseCase) List(ctx context.Context, restaurantID, categoryID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByRestaurant(ctx, restaurantID, categoryID, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p, nil))
	}
	return out, nil
}

// Update reemplaza los datos editables del producto.
func (uc *ProductUseCase) Update(ctx context.Context, restaurantID, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, restaurantID, in); err != nil {
		return nil, err
	}
	p.CategoryID = in.CategoryID
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	p.IsFeatured = in.IsFeatured
	p.Position = in.Position
	p.Tags = normalizeTags(in.Tags)
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	out := toProductResponse(p, nil)
	return &out, nil
}

// ToggleAvailability invierte la disponibilidad (ej. plato agotado).
func (uc *ProductUseCase) ToggleAvailability(ctx context.Context, restaurantID, id string) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	p.IsAvailable = !p.IsAvailable
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	out := toProductResponse(p, nil)
	return &out, nil
}

// UploadImage guarda la foto del producto y actualiza su URL.
func (uc *ProductUseCase) UploadImage(ctx context.Context, restaurantID, id string, img ImageUpload) (*dto.ImageUploadResponse, error) {
	p, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	url, err := saveImage(ctx, uc.storage, restaurantID, "product", img)
	if err != nil {
		return nil, err
	}
	p.ImageURL = url
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	return &dto.ImageUploadResponse{URL: url}, nil
}

// Delete elimina un producto y sus variantes.
func (uc *ProductUseCase) Delete(ctx context.Context, restaurantID, id string) error {
	if err := uc.repo.Delete(ctx, restaurantID, id); err != nil {
		return err
	}
	menu.Invalidate(ctx, uc.cache, restaurantID)
	return nil
}

func (uc *ProductUseCase) load(ctx context.Context, restaurantID, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *ProductUseCase) validate(ctx context.Context, restaurantID string, in dto.ProductRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name es obligatorio")
	}
	if in.Price.IsNegative() {
		return invalid("price no puede ser negativo")
	}
	if len(in.Tags) > maxTags {
		return invalid("máximo 10 tags")
	}
	c, err := uc.categories.GetByID(ctx, restaurantID, in.CategoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return invalid("category_id no pertenece al restaurante")
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func toProductResponse(p *entity.Product, variants []*entity.Variant) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		IsAvailable: p.IsAvailable,
		IsFeatured:  p.IsFeatured,
		Position:    p.Position,
		Tags:        p.Tags,
		CreatedAt:   p.CreatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	for _, v := range variants {
		out.Variants = append(out.Variants, toVariantResponse(v))
	}
	return out
}
