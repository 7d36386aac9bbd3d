package postgres_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/migrations"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/postgres"
	"github.com/jhoicas/MenuQR-api/pkg/config"
)

// Instante fijo: los predicados reciben now como parámetro, no dependen del reloj.
var refNow = time.Date(2030, 1, 15, 12, 0, 0, 0, time.UTC)

func migrationsPath(t *testing.T) string {
	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	return filepath.Join(root, "migrations")
}

// getTestPool levanta PostgreSQL en un contenedor, aplica las migraciones y devuelve el pool.
func getTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("requiere Docker; omitido con -short")
	}
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("menuqr"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.Run(postgres.SQLDB(pool), migrationsPath(t)))
	return pool
}

func seedRestaurant(t *testing.T, repo *postgres.RestaurantRepo, status, plan string, end time.Time, autoRenew bool) *entity.Restaurant {
	t.Helper()
	id := uuid.New().String()
	r := &entity.Restaurant{
		ID:                    id,
		Name:                  "Restaurante " + id[:8],
		Slug:                  "r-" + id[:8],
		Currency:              "COP",
		ThemeColor:            "#e11d48",
		IsActive:              status == entity.SubscriptionActive,
		SubscriptionPlan:      plan,
		SubscriptionStatus:    status,
		SubscriptionStartDate: end.AddDate(0, -1, 0),
		SubscriptionEndDate:   end,
		AutoRenew:             autoRenew,
		CreatedAt:             refNow,
		UpdatedAt:             refNow,
	}
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE restaurants CASCADE`)
	require.NoError(t, err)
}

func ids(list []*entity.Restaurant) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func TestRestaurantRepo_Subscription(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()
	repo := postgres.NewRestaurantRepository(pool)

	t.Run("migrations are idempotent", func(t *testing.T) {
		require.NoError(t, migrations.Run(postgres.SQLDB(pool), migrationsPath(t)))
	})

	t.Run("ExpireOverdue only touches active rows past their end", func(t *testing.T) {
		reset(t, pool)
		overdue := seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, refNow.Add(-time.Second), false)
		alreadyExpired := seedRestaurant(t, repo, entity.SubscriptionExpired, entity.PlanMonthly, refNow.Add(-48*time.Hour), false)
		cancelled := seedRestaurant(t, repo, entity.SubscriptionCancelled, entity.PlanYearly, refNow.Add(-48*time.Hour), false)
		endsNow := seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanTrial, refNow, false)
		future := seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, refNow.Add(time.Hour), true)

		got, err := repo.ExpireOverdue(ctx, refNow)
		require.NoError(t, err)
		assert.Equal(t, []string{overdue.ID}, got)

		row, err := repo.GetByID(ctx, overdue.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.SubscriptionExpired, row.SubscriptionStatus)
		assert.False(t, row.IsActive)

		for _, r := range []*entity.Restaurant{alreadyExpired, cancelled, endsNow, future} {
			row, err := repo.GetByID(ctx, r.ID)
			require.NoError(t, err)
			assert.Equal(t, r.SubscriptionStatus, row.SubscriptionStatus, r.ID)
		}

		again, err := repo.ExpireOverdue(ctx, refNow)
		require.NoError(t, err)
		assert.Empty(t, again)
	})

	t.Run("FindRenewable window is inclusive on both ends", func(t *testing.T) {
		reset(t, pool)
		to := refNow.Add(24 * time.Hour)
		atFrom := seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, refNow, true)
		inside := seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, refNow.Add(6*time.Hour), true)
		atTo := seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, to, true)
		seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, refNow.Add(-time.Second), true)
		seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, to.Add(time.Second), true)
		seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, inside.SubscriptionEndDate, false)
		seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanYearly, inside.SubscriptionEndDate, true)
		seedRestaurant(t, repo, entity.SubscriptionExpired, entity.PlanMonthly, inside.SubscriptionEndDate, true)

		got, err := repo.FindRenewable(ctx, refNow, to)
		require.NoError(t, err)
		assert.Equal(t, []string{atFrom.ID, inside.ID, atTo.ID}, ids(got))
	})

	t.Run("RenewIfUnchanged applies once", func(t *testing.T) {
		reset(t, pool)
		r := seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, refNow.Add(time.Hour), true)
		newEnd := r.SubscriptionEndDate.AddDate(0, 1, 0)

		ok, err := repo.RenewIfUnchanged(ctx, r.ID, r.SubscriptionEndDate, newEnd)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.RenewIfUnchanged(ctx, r.ID, r.SubscriptionEndDate, newEnd.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.False(t, ok)

		row, err := repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.True(t, newEnd.Equal(row.SubscriptionEndDate), row.SubscriptionEndDate)
	})

	t.Run("RenewIfUnchanged skips expired rows", func(t *testing.T) {
		reset(t, pool)
		r := seedRestaurant(t, repo, entity.SubscriptionExpired, entity.PlanMonthly, refNow.Add(time.Hour), true)
		ok, err := repo.RenewIfUnchanged(ctx, r.ID, r.SubscriptionEndDate, r.SubscriptionEndDate.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("RunRenewal commits or rolls back end date and history together", func(t *testing.T) {
		reset(t, pool)
		tx := postgres.NewTxRunner(pool)
		history := postgres.NewSubscriptionHistoryRepository(pool)
		r := seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, refNow.Add(time.Hour), true)
		newEnd := r.SubscriptionEndDate.AddDate(0, 1, 0)
		entry := func() *entity.SubscriptionHistory {
			return &entity.SubscriptionHistory{
				ID: uuid.New().String(), RestaurantID: r.ID, Plan: entity.PlanMonthly,
				StartDate: r.SubscriptionEndDate, EndDate: newEnd,
				Amount: decimal.RequireFromString("29.00"), CreatedAt: refNow,
			}
		}

		failure := errors.New("fallo después de escribir")
		err := tx.RunRenewal(ctx, func(store subscription.RenewalStore) error {
			ok, err := store.RenewIfUnchanged(ctx, r.ID, r.SubscriptionEndDate, newEnd)
			require.NoError(t, err)
			require.True(t, ok)
			require.NoError(t, store.AppendHistory(ctx, entry()))
			return failure
		})
		require.ErrorIs(t, err, failure)

		row, err := repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.True(t, r.SubscriptionEndDate.Equal(row.SubscriptionEndDate))
		list, err := history.ListByRestaurant(ctx, r.ID)
		require.NoError(t, err)
		assert.Empty(t, list)

		err = tx.RunRenewal(ctx, func(store subscription.RenewalStore) error {
			if _, err := store.RenewIfUnchanged(ctx, r.ID, r.SubscriptionEndDate, newEnd); err != nil {
				return err
			}
			return store.AppendHistory(ctx, entry())
		})
		require.NoError(t, err)

		row, err = repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.True(t, newEnd.Equal(row.SubscriptionEndDate))
		list, err = history.ListByRestaurant(ctx, r.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, decimal.RequireFromString("29.00").Equal(list[0].Amount))
	})

	t.Run("SetAutoRenew writes only the flag", func(t *testing.T) {
		reset(t, pool)
		r := seedRestaurant(t, repo, entity.SubscriptionActive, entity.PlanMonthly, refNow.Add(-time.Hour), false)
		_, err := repo.ExpireOverdue(ctx, refNow)
		require.NoError(t, err)

		require.NoError(t, repo.SetAutoRenew(ctx, r.ID, true))

		row, err := repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.True(t, row.AutoRenew)
		assert.Equal(t, entity.SubscriptionExpired, row.SubscriptionStatus)
		assert.False(t, row.IsActive)
		assert.True(t, r.SubscriptionEndDate.Equal(row.SubscriptionEndDate))

		err = repo.SetAutoRenew(ctx, uuid.New().String(), true)
		assert.True(t, errors.Is(err, domain.ErrRestaurantNotFound))
	})
}
