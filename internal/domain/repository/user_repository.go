package repository

import (
	"context"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindOwnerByRestaurant devuelve el RESTAURANT_OWNER más antiguo del restaurante o (nil, nil).
	FindOwnerByRestaurant(ctx context.Context, restaurantID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
