package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/MenuQR-api/internal/application/auth"
	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

var (
	_ subscription.TxRunner = (*TxRunner)(nil)
	_ auth.TxRunner         = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRenewal ejecuta fn con el restaurante y su historial atados a una misma transacción.
func (r *TxRunner) RunRenewal(ctx context.Context, fn func(store subscription.RenewalStore) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(renewalStore{
			restaurants: NewRestaurantRepository(tx),
			history:     NewSubscriptionHistoryRepository(tx),
		})
	})
}

// RunRegistration crea restaurante y propietario en la misma transacción.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(restaurants repository.RestaurantRepository, users repository.UserRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewRestaurantRepository(tx), NewUserRepository(tx))
	})
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type renewalStore struct {
	restaurants *RestaurantRepo
	history     *SubscriptionHistoryRepo
}

func (s renewalStore) RenewIfUnchanged(ctx context.Context, id string, oldEnd, newEnd time.Time) (bool, error) {
	return s.restaurants.RenewIfUnchanged(ctx, id, oldEnd, newEnd)
}

func (s renewalStore) UpdateSubscription(ctx context.Context, rs *entity.Restaurant) error {
	return s.restaurants.UpdateSubscription(ctx, rs)
}

func (s renewalStore) AppendHistory(ctx context.Context, h *entity.SubscriptionHistory) error {
	return s.history.Create(ctx, h)
}
