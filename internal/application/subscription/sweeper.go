package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	policy "github.com/jhoicas/MenuQR-api/internal/domain/subscription"
	"github.com/jhoicas/MenuQR-api/pkg/metrics"
)

// SweeperConfig parámetros comerciales del barrido.
type SweeperConfig struct {
	MonthlyAmount decimal.Decimal
	RenewWindow   time.Duration    // 0 = policy.DefaultRenewWindow
	Now           func() time.Time // nil = time.Now
}

// Sweeper reconcilia suscripciones: vence las pasadas de fecha y renueva las mensuales con auto-renovación.
type Sweeper struct {
	repo     SweepRepository
	tx       TxRunner
	notifier ExpiryNotifier
	cfg      SweeperConfig
	log      zerolog.Logger
}

// NewSweeper construye el barrido. notifier puede ser nil.
func NewSweeper(repo SweepRepository, tx TxRunner, notifier ExpiryNotifier, cfg SweeperConfig, log zerolog.Logger) *Sweeper {
	if cfg.RenewWindow <= 0 {
		cfg.RenewWindow = policy.DefaultRenewWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Sweeper{
		repo:     repo,
		tx:       tx,
		notifier: notifier,
		cfg:      cfg,
		log:      log.With().Str("component", "sweeper").Logger(),
	}
}

// ExpireSweep marca EXPIRED e inactivos, en una sola actualización, los ACTIVE con fin < now.
// Sin candidatos devuelve 0 sin error.
func (s *Sweeper) ExpireSweep(ctx context.Context) (int, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.SweepDuration.WithLabelValues("expire"))

	now := s.cfg.Now()
	ids, err := s.repo.ExpireOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("expire sweep: %w", err)
	}
	metrics.SweepExpiredTotal.Add(float64(len(ids)))
	s.log.Info().Int("updated", len(ids)).Time("now", now).Msg("expire sweep completed")

	if len(ids) > 0 && s.notifier != nil {
		s.notifier.NotifyExpired(ctx, ids)
	}
	return len(ids), nil
}

// RenewSweep extiende un mes calendario las suscripciones renovables y anota el período en el historial.
// Cada restaurante se procesa en su propia transacción; un fallo se registra y el lote continúa.
// Devuelve cuántos se renovaron efectivamente.
func (s *Sweeper) RenewSweep(ctx context.Context) (int, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.SweepDuration.WithLabelValues("renew"))

	now := s.cfg.Now()
	candidates, err := s.repo.FindRenewable(ctx, now, now.Add(s.cfg.RenewWindow))
	if err != nil {
		return 0, fmt.Errorf("renew sweep: %w", err)
	}

	renewed, failed := 0, 0
	for _, r := range candidates {
		if ctx.Err() != nil {
			break
		}
		// La consulta ya filtra; se revalida por si el repositorio es más laxo.
		if !policy.IsRenewable(r, now, s.cfg.RenewWindow) {
			continue
		}
		ok, err := s.renewOne(ctx, r, now)
		if err != nil {
			failed++
			metrics.SweepRenewFailuresTotal.Inc()
			s.log.Error().Err(err).Str("restaurant_id", r.ID).Msg("renewal failed, continuing")
			continue
		}
		if !ok {
			s.log.Debug().Str("restaurant_id", r.ID).Msg("already renewed by a concurrent sweep")
			continue
		}
		renewed++
	}

	metrics.SweepRenewedTotal.Add(float64(renewed))
	s.log.Info().
		Int("candidates", len(candidates)).
		Int("renewed", renewed).
		Int("failed", failed).
		Msg("renew sweep completed")
	return renewed, nil
}

func (s *Sweeper) renewOne(ctx context.Context, r *entity.Restaurant, now time.Time) (bool, error) {
	oldEnd := r.SubscriptionEndDate
	newEnd := policy.AddMonths(oldEnd, 1)

	var renewed bool
	err := s.tx.RunRenewal(ctx, func(store RenewalStore) error {
		ok, err := store.RenewIfUnchanged(ctx, r.ID, oldEnd, newEnd)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		h := &entity.SubscriptionHistory{
			ID:           uuid.New().String(),
			RestaurantID: r.ID,
			Plan:         r.SubscriptionPlan,
			StartDate:    oldEnd,
			EndDate:      newEnd,
			Amount:       s.cfg.MonthlyAmount,
			Notes:        "Renovación automática",
			CreatedAt:    now,
		}
		if err := store.AppendHistory(ctx, h); err != nil {
			return err
		}
		renewed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return renewed, nil
}
