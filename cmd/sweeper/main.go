// sweeper vence las suscripciones cuyo período terminó y renueva las que tienen auto-renovación.
//
// Uso:
//
//	go run ./cmd/sweeper          # programa según SWEEPER_SCHEDULE (cron con segundos)
//	go run ./cmd/sweeper -once    # una sola ejecución y sale
//
// Con REDIS_ADDR definido, las ejecuciones concurrentes de varias réplicas se serializan con un lock redsync.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/cache"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/lock"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/mail"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/postgres"
	"github.com/jhoicas/MenuQR-api/pkg/config"
	"github.com/jhoicas/MenuQR-api/pkg/logger"
)

func main() {
	once := flag.Bool("once", false, "ejecutar un único barrido y salir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	monthlyAmount, err := decimal.NewFromString(cfg.Subscription.MonthlyAmount)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Subscription.MonthlyAmount).Msg("SUBSCRIPTION_MONTHLY_AMOUNT inválido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var locker subscription.Locker
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func(rdb *redis.Client) { _ = rdb.Close() }(rdb)
		locker = lock.NewRedsyncLocker(rdb, lock.SweepLockKey, cfg.Sweeper.LockTTL, log.Component("lock"))
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: el barrido corre sin lock distribuido")
	}

	restaurants := postgres.NewRestaurantRepository(pool)
	mailer := mail.New(cfg.SMTP, log.Component("mail"))
	notifier := subscription.NewMailExpiryNotifier(restaurants, postgres.NewUserRepository(pool), mailer, cfg.App.BaseURL, log.Component("notifier"))
	sweeper := subscription.NewSweeper(restaurants, postgres.NewTxRunner(pool), notifier,
		subscription.SweeperConfig{MonthlyAmount: monthlyAmount, RenewWindow: cfg.Subscription.RenewWindow},
		log.Component("sweeper"))
	runner := subscription.NewRunner(sweeper, locker, cfg.Sweeper.Timeout, log.Component("runner"))

	run := func() {
		res, err := runner.RunOnce(ctx)
		if err != nil {
			log.Error().Err(err).Msg("barrido con errores")
			return
		}
		log.Info().
			Int("expired", res.Expired).
			Int("renewed", res.Renewed).
			Bool("skipped", res.Skipped).
			Msg("barrido terminado")
	}

	if *once {
		run()
		return
	}

	c := newScheduler(log.Component("cron"))
	if _, err := c.AddFunc(cfg.Sweeper.Schedule, run); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Sweeper.Schedule).Msg("SWEEPER_SCHEDULE inválido")
	}
	c.Start()
	log.Info().Str("schedule", cfg.Sweeper.Schedule).Msg("barrido programado")

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, esperando barrido en curso...")
	<-c.Stop().Done()
	log.Info().Msg("sweeper detenido")
}
