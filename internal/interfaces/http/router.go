package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/jhoicas/MenuQR-api/internal/application/auth"
	"github.com/jhoicas/MenuQR-api/internal/application/impersonation"
	"github.com/jhoicas/MenuQR-api/internal/application/menu"
	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	RestaurantUC    *usecase.RestaurantUseCase
	CategoryUC      *usecase.CategoryUseCase
	ProductUC       *usecase.ProductUseCase
	VariantUC       *usecase.VariantUseCase
	AnalyticsUC     *usecase.AnalyticsUseCase
	AIUC            *usecase.AIUseCase
	NewsletterUC    *usecase.NewsletterUseCase
	AdminUC         *usecase.AdminUseCase
	PublicMenuUC    *menu.PublicMenuUseCase
	QRUC            *menu.QRUseCase
	SubscriptionUC  *subscription.SubscriptionUseCase
	Sweeper         *subscription.Sweeper
	Impersonation   *impersonation.Manager
	Session         SessionConfig
	PublicRateLimit *IPRateLimiter
	UploadsDir      string // vacío si las imágenes no se sirven desde disco
	Log             zerolog.Logger
}

// Router registra las rutas de la API, las páginas y los endpoints operativos.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if deps.UploadsDir != "" {
		app.Static("/uploads", deps.UploadsDir)
	}

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.Session), authHandler.Me)

	// Público (con límite por IP)
	publicHandler := NewPublicHandler(deps.PublicMenuUC, deps.NewsletterUC)
	public := api.Group("/public", RateLimit(deps.PublicRateLimit))
	public.Get("/menu/:slug", publicHandler.Menu)
	public.Post("/newsletter", publicHandler.Subscribe)

	// Panel del restaurante (restaurante efectivo de la sesión)
	dashboard := api.Group("/dashboard", AuthMiddleware(deps.Session), RestaurantScope())

	restaurantHandler := NewRestaurantHandler(deps.RestaurantUC, deps.QRUC, deps.SubscriptionUC)
	dashboard.Get("/restaurant", restaurantHandler.Get)
	dashboard.Patch("/restaurant", restaurantHandler.Update)
	dashboard.Post("/restaurant/images/:kind", restaurantHandler.UploadImage)
	dashboard.Get("/qr.png", restaurantHandler.QRCode)
	dashboard.Get("/qr.pdf", restaurantHandler.Poster)
	dashboard.Get("/subscription", restaurantHandler.Subscription)
	dashboard.Put("/subscription/auto-renew", restaurantHandler.SetAutoRenew)
	dashboard.Get("/subscription/history", restaurantHandler.SubscriptionHistory)

	catalog := NewCatalogHandler(deps.CategoryUC, deps.ProductUC, deps.VariantUC)
	dashboard.Get("/categories", catalog.ListCategories)
	dashboard.Post("/categories", catalog.CreateCategory)
	dashboard.Put("/categories/reorder", catalog.ReorderCategories)
	dashboard.Put("/categories/:id", catalog.UpdateCategory)
	dashboard.Delete("/categories/:id", catalog.DeleteCategory)
	dashboard.Get("/products", catalog.ListProducts)
	dashboard.Post("/products", catalog.CreateProduct)
	dashboard.Get("/products/:id", catalog.GetProduct)
	dashboard.Put("/products/:id", catalog.UpdateProduct)
	dashboard.Patch("/products/:id/toggle", catalog.ToggleProduct)
	dashboard.Post("/products/:id/image", catalog.UploadProductImage)
	dashboard.Delete("/products/:id", catalog.DeleteProduct)
	dashboard.Get("/products/:id/variants", catalog.ListVariants)
	dashboard.Post("/products/:id/variants", catalog.CreateVariant)
	dashboard.Put("/variants/:id", catalog.UpdateVariant)
	dashboard.Delete("/variants/:id", catalog.DeleteVariant)

	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	dashboard.Get("/analytics", analyticsHandler.Summary)
	dashboard.Get("/analytics/export.csv", analyticsHandler.ExportCSV)

	aiHandler := NewAIHandler(deps.AIUC)
	dashboard.Post("/ai/description", aiHandler.GenerateDescription)

	// Super-admin
	adminHandler := NewAdminHandler(AdminDeps{
		Admin:         deps.AdminUC,
		Newsletter:    deps.NewsletterUC,
		Sweeper:       deps.Sweeper,
		Impersonation: deps.Impersonation,
		Auth:          deps.AuthUC,
		Session:       deps.Session,
	})
	admin := api.Group("/super-admin", AuthMiddleware(deps.Session), RequireRole(entity.RoleSuperAdmin))
	admin.Get("/restaurants", adminHandler.ListRestaurants)
	admin.Get("/restaurants/:id", adminHandler.GetRestaurant)
	admin.Put("/restaurants/:id/active", adminHandler.SetActive)
	admin.Put("/restaurants/:id/plan", adminHandler.ChangePlan)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/newsletter", adminHandler.Newsletter)
	admin.Post("/sweep/expire", adminHandler.SweepExpire)
	admin.Post("/sweep/renew", adminHandler.SweepRenew)
	admin.Post("/impersonate/:restaurantId", adminHandler.BeginImpersonation)
	admin.Delete("/impersonate", adminHandler.EndImpersonation)

	// Páginas (sesión por cookie + AccessGate)
	pageHandler := NewPageHandler(deps.PublicMenuUC, deps.Log)
	gate := []fiber.Handler{OptionalSession(deps.Session), AccessGate()}
	page := func(path string, handlers ...fiber.Handler) {
		app.Get(path, append(append([]fiber.Handler{}, gate...), handlers...)...)
	}
	page("/", pageHandler.Home)
	page("/login", pageHandler.Login)
	page("/dashboard", pageHandler.Dashboard)
	page("/dashboard/*", pageHandler.Dashboard)
	page("/super-admin", pageHandler.SuperAdmin)
	page("/super-admin/*", pageHandler.SuperAdmin)
	page("/menu/:slug", RateLimit(deps.PublicRateLimit), pageHandler.Menu)
}
