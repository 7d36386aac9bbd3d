package repository

import (
	"context"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
)

// CategoryRepository persiste categorías; toda operación va acotada por restaurante.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, restaurantID, id string) (*entity.Category, error)
	ListByRestaurant(ctx context.Context, restaurantID string, onlyActive bool) ([]*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, restaurantID, id string) error
	// Reorder asigna Position = índice en ids.
	Reorder(ctx context.Context, restaurantID string, ids []string) error
}

// ProductRepository persiste productos de la carta.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, restaurantID, id string) (*entity.Product, error)
	// ListByRestaurant filtra por categoría si categoryID no es vacío.
	ListByRestaurant(ctx context.Context, restaurantID, categoryID string, onlyAvailable bool) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, restaurantID, id string) error
}

// VariantRepository persiste variantes de producto.
type VariantRepository interface {
	Create(ctx context.Context, v *entity.Variant) error
	GetByID(ctx context.Context, restaurantID, id string) (*entity.Variant, error)
	ListByProduct(ctx context.Context, restaurantID, productID string) ([]*entity.Variant, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Variant, error)
	Update(ctx context.Context, v *entity.Variant) error
	Delete(ctx context.Context, restaurantID, id string) error
}
