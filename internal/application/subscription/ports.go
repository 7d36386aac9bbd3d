package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
)

// ErrLockHeld indica que otra instancia del barrido ya tiene el lock.
var ErrLockHeld = errors.New("barrido en curso en otra instancia")

// SweepRepository lecturas y la actualización masiva que necesita el barrido.
type SweepRepository interface {
	ExpireOverdue(ctx context.Context, now time.Time) ([]string, error)
	FindRenewable(ctx context.Context, from, to time.Time) ([]*entity.Restaurant, error)
}

// RenewalStore escrituras de un cambio de período, atadas a una misma transacción.
type RenewalStore interface {
	RenewIfUnchanged(ctx context.Context, id string, oldEnd, newEnd time.Time) (bool, error)
	UpdateSubscription(ctx context.Context, r *entity.Restaurant) error
	AppendHistory(ctx context.Context, h *entity.SubscriptionHistory) error
}

// TxRunner ejecuta fn dentro de una transacción de BD con un RenewalStore atado a ella.
type TxRunner interface {
	RunRenewal(ctx context.Context, fn func(store RenewalStore) error) error
}

// ExpiryNotifier avisa a los propietarios de restaurantes recién vencidos. Best-effort.
type ExpiryNotifier interface {
	NotifyExpired(ctx context.Context, restaurantIDs []string)
}

// Locker exclusión mutua entre instancias del barrido. Lock devuelve ErrLockHeld si está ocupado.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}
