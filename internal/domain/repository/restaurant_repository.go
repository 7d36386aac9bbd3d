package repository

import (
	"context"
	"time"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
)

// RestaurantFilter filtros del listado de restaurantes del super-admin.
type RestaurantFilter struct {
	Status string // ACTIVE | EXPIRED | CANCELLED; vacío = todos
	Plan   string
	Search string // coincidencia parcial en nombre o slug
	Limit  int
	Offset int
}

// RestaurantRepository define el puerto de persistencia para Restaurant (DIP).
// GetByID y GetBySlug devuelven (nil, nil) cuando no hay fila.
type RestaurantRepository interface {
	Create(ctx context.Context, r *entity.Restaurant) error
	GetByID(ctx context.Context, id string) (*entity.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Restaurant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Update persiste los campos de perfil (no toca la suscripción).
	Update(ctx context.Context, r *entity.Restaurant) error
	SetActive(ctx context.Context, id string, active bool) error
	// SetAutoRenew cambia solo auto_renew; no pisa estado ni fechas escritos por el barrido.
	SetAutoRenew(ctx context.Context, id string, autoRenew bool) error
	// UpdateSubscription persiste plan, estado, fechas, auto-renovación e is_active.
	UpdateSubscription(ctx context.Context, r *entity.Restaurant) error
	List(ctx context.Context, f RestaurantFilter) ([]*entity.Restaurant, int, error)
	CountBySubscriptionStatus(ctx context.Context) (map[string]int, error)

	// ExpireOverdue marca EXPIRED e inactivos, en una sola sentencia, los ACTIVE con fin < now.
	// Devuelve los IDs afectados.
	ExpireOverdue(ctx context.Context, now time.Time) ([]string, error)
	// FindRenewable lista los MONTHLY, ACTIVE, auto_renew con fin en [from, to].
	FindRenewable(ctx context.Context, from, to time.Time) ([]*entity.Restaurant, error)
	// RenewIfUnchanged mueve el fin a newEnd solo si sigue ACTIVE y con fin == oldEnd.
	// Devuelve false si otra ejecución ya lo modificó.
	RenewIfUnchanged(ctx context.Context, id string, oldEnd, newEnd time.Time) (bool, error)
}

// SubscriptionHistoryRepository es un libro de solo inserción.
type SubscriptionHistoryRepository interface {
	Create(ctx context.Context, h *entity.SubscriptionHistory) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*entity.SubscriptionHistory, error)
}
