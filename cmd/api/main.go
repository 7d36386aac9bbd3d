package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/MenuQR-api/internal/application/auth"
	"github.com/jhoicas/MenuQR-api/internal/application/impersonation"
	"github.com/jhoicas/MenuQR-api/internal/application/menu"
	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
	infraai "github.com/jhoicas/MenuQR-api/internal/infrastructure/ai"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/cache"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/mail"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/migrations"
	infrapdf "github.com/jhoicas/MenuQR-api/internal/infrastructure/pdf"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/postgres"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/qr"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/MenuQR-api/internal/interfaces/http"
	"github.com/jhoicas/MenuQR-api/pkg/config"
	"github.com/jhoicas/MenuQR-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", postgres.RedactedDSN(cfg.DB)).
		Str("smtp", mail.Describe(cfg.SMTP)).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Migrations.RunOnBoot {
		if err := migrations.Run(postgres.SQLDB(pool), cfg.Migrations.Path); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Str("path", cfg.Migrations.Path).Msg("migraciones aplicadas")
	}

	monthlyAmount, err := decimal.NewFromString(cfg.Subscription.MonthlyAmount)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Subscription.MonthlyAmount).Msg("SUBSCRIPTION_MONTHLY_AMOUNT inválido")
	}

	// Redis es opcional: sin él no hay caché del menú.
	var menuCache ports.MenuCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func(rdb *redis.Client) { _ = rdb.Close() }(rdb)
		menuCache = cache.NewRedisCache(rdb)
	}

	fileStorage, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}

	restaurantRepo := postgres.NewRestaurantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	viewRepo := postgres.NewMenuViewRepository(pool)
	newsletterRepo := postgres.NewNewsletterRepository(pool)
	historyRepo := postgres.NewSubscriptionHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailer := mail.New(cfg.SMTP, log.Component("mail"))

	var llm ports.LLMService
	switch cfg.AI.Provider {
	case "gemini":
		llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	default:
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	}

	authUC := auth.NewAuthUseCase(userRepo, restaurantRepo, txRunner, mailer, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.BaseURL, cfg.Subscription.TrialDays, log.Component("auth"))

	subscriptionUC := subscription.NewSubscriptionUseCase(restaurantRepo, historyRepo, txRunner, monthlyAmount, cfg.Subscription.TrialDays)
	sweeper := subscription.NewSweeper(restaurantRepo, txRunner,
		subscription.NewMailExpiryNotifier(restaurantRepo, userRepo, mailer, cfg.App.BaseURL, log.Component("notifier")),
		subscription.SweeperConfig{MonthlyAmount: monthlyAmount, RenewWindow: cfg.Subscription.RenewWindow},
		log.Component("sweeper"))

	publicMenuUC := menu.NewPublicMenuUseCase(menu.Repositories{
		Restaurants: restaurantRepo,
		Categories:  categoryRepo,
		Products:    productRepo,
		Variants:    variantRepo,
		Views:       viewRepo,
	}, menuCache, cfg.Redis.MenuCacheTTL, log.Component("public_menu"))
	qrUC := menu.NewQRUseCase(restaurantRepo, qr.NewEncoder(), infrapdf.NewPosterGenerator(), cfg.App.BaseURL)

	uploadsDir := ""
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		uploadsDir = cfg.Storage.LocalDir
	}

	app := fiber.New(fiber.Config{
		AppName:       cfg.App.Name,
		CaseSensitive: true,
		ReadTimeout:   time.Second * 10,
		WriteTimeout:  time.Second * 30,
		IdleTimeout:   time.Second * 60,
		BodyLimit:     usecase.MaxImageBytes + 1<<20,
		ErrorHandler:  httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "MenuQR API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "db": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		RestaurantUC:   usecase.NewRestaurantUseCase(restaurantRepo, fileStorage, cfg.App.BaseURL),
		CategoryUC:     usecase.NewCategoryUseCase(categoryRepo, menuCache),
		ProductUC:      usecase.NewProductUseCase(productRepo, categoryRepo, variantRepo, fileStorage, menuCache),
		VariantUC:      usecase.NewVariantUseCase(variantRepo, productRepo, menuCache),
		AnalyticsUC:    usecase.NewAnalyticsUseCase(viewRepo),
		AIUC:           usecase.NewAIUseCase(llm),
		NewsletterUC:   usecase.NewNewsletterUseCase(newsletterRepo, mailer, log.Component("newsletter")),
		AdminUC:        usecase.NewAdminUseCase(restaurantRepo, subscriptionUC, cfg.App.BaseURL),
		PublicMenuUC:   publicMenuUC,
		QRUC:           qrUC,
		SubscriptionUC: subscriptionUC,
		Sweeper:        sweeper,
		Impersonation:  impersonation.NewManager(restaurantRepo, userRepo),
		Session: httpRouter.SessionConfig{
			Secret:       cfg.JWT.Secret,
			CookieName:   cfg.JWT.CookieName,
			TTL:          time.Duration(cfg.JWT.Expiration) * time.Minute,
			SecureCookie: cfg.HTTP.SecureCookie,
		},
		PublicRateLimit: httpRouter.NewIPRateLimiter(float64(cfg.HTTP.PublicRPS), cfg.HTTP.PublicBurst),
		UploadsDir:      uploadsDir,
		Log:             log.Component("pages"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
