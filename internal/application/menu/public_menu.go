// Package menu contiene el camino de lectura pública del menú y la generación de códigos QR.
package menu

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
	"github.com/jhoicas/MenuQR-api/internal/domain/subscription"
	"github.com/jhoicas/MenuQR-api/pkg/metrics"
)

// CacheKey clave del cuerpo del menú en caché. El estado del restaurante nunca se cachea.
func CacheKey(restaurantID string) string {
	return "menu:body:" + restaurantID
}

// Invalidate borra el menú cacheado de un restaurante. Un fallo solo deja el dato viejo hasta el TTL.
func Invalidate(ctx context.Context, cache ports.MenuCache, restaurantID string) {
	if cache == nil {
		return
	}
	_ = cache.Delete(ctx, CacheKey(restaurantID))
}

// Repositories agrupa los puertos de lectura del menú.
type Repositories struct {
	Restaurants repository.RestaurantRepository
	Categories  repository.CategoryRepository
	Products    repository.ProductRepository
	Variants    repository.VariantRepository
	Views       repository.MenuViewRepository
}

// PublicMenuUseCase resuelve el slug, aplica la política de acceso, registra la vista y arma la carta.
type PublicMenuUseCase struct {
	repos    Repositories
	cache    ports.MenuCache
	cacheTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewPublicMenuUseCase construye el caso de uso. cache puede ser nil.
func NewPublicMenuUseCase(repos Repositories, cache ports.MenuCache, cacheTTL time.Duration, log zerolog.Logger) *PublicMenuUseCase {
	return &PublicMenuUseCase{
		repos:    repos,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With().Str("component", "public_menu").Logger(),
		now:      time.Now,
	}
}

// Render devuelve la carta pública del slug.
// Restaurante inactivo -> ErrRestaurantInactive; suscripción vencida -> ErrSubscriptionExpired.
// En ambos casos no se registra vista. El registro de la vista nunca hace fallar la lectura.
func (uc *PublicMenuUseCase) Render(ctx context.Context, slug string, viewer dto.Viewer) (*dto.PublicMenuResponse, error) {
	r, err := uc.repos.Restaurants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRestaurantNotFound
	}
	now := uc.now()
	if !r.IsActive {
		return nil, domain.ErrRestaurantInactive
	}
	if subscription.IsExpired(r, now) {
		return nil, domain.ErrSubscriptionExpired
	}

	categories, err := uc.body(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	uc.logView(ctx, r.ID, viewer, now)

	return &dto.PublicMenuResponse{
		Restaurant: dto.PublicRestaurant{
			Name:        r.Name,
			Slug:        r.Slug,
			Description: r.Description,
			Address:     r.Address,
			Phone:       r.Phone,
			LogoURL:     r.LogoURL,
			CoverURL:    r.CoverURL,
			Currency:    r.Currency,
			ThemeColor:  r.ThemeColor,
		},
		Categories: categories,
	}, nil
}

func (uc *PublicMenuUseCase) body(ctx context.Context, restaurantID string) ([]dto.PublicCategory, error) {
	key := CacheKey(restaurantID)
	if uc.cache != nil {
		raw, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Msg("menu cache read failed")
		} else if ok {
			var cached []dto.PublicCategory
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	categories, err := uc.load(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(categories); err == nil {
			if err := uc.cache.Set(ctx, key, raw, uc.cacheTTL); err != nil {
				uc.log.Warn().Err(err).Msg("menu cache write failed")
			}
		}
	}
	return categories, nil
}

// load arma la carta: categorías activas por posición, solo productos disponibles, con sus variantes.
// Las categorías sin productos disponibles no se muestran.
func (uc *PublicMenuUseCase) load(ctx context.Context, restaurantID string) ([]dto.PublicCategory, error) {
	cats, err := uc.repos.Categories.ListByRestaurant(ctx, restaurantID, true)
	if err != nil {
		return nil, err
	}
	products, err := uc.repos.Products.ListByRestaurant(ctx, restaurantID, "", true)
	if err != nil {
		return nil, err
	}
	variants, err := uc.repos.Variants.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string][]dto.PublicVariant)
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], dto.PublicVariant{Name: v.Name, Price: v.Price})
	}
	byCategory := make(map[string][]dto.PublicProduct)
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], toPublicProduct(p, byProduct[p.ID]))
	}

	out := make([]dto.PublicCategory, 0, len(cats))
	for _, c := range cats {
		items := byCategory[c.ID]
		if len(items) == 0 {
			continue
		}
		out = append(out, dto.PublicCategory{ID: c.ID, Name: c.Name, Description: c.Description, Products: items})
	}
	return out, nil
}

func (uc *PublicMenuUseCase) logView(ctx context.Context, restaurantID string, viewer dto.Viewer, now time.Time) {
	metrics.MenuViewsTotal.Inc()
	err := uc.repos.Views.Create(ctx, &entity.MenuView{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		ViewedAt:     now,
		UserAgent:    truncate(viewer.UserAgent, 512),
		Language:     PrimaryLanguage(viewer.Language),
	})
	if err != nil {
		metrics.MenuViewLogFailuresTotal.Inc()
		uc.log.Warn().Err(err).Str("restaurant_id", restaurantID).Msg("menu view not recorded")
	}
}

// PrimaryLanguage extrae el idioma base preferido de un Accept-Language ("es-CO,es;q=0.9" -> "es").
func PrimaryLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ""
	}
	base, _ := tags[0].Base()
	if base.String() == "und" {
		return ""
	}
	return base.String()
}

func toPublicProduct(p *entity.Product, variants []dto.PublicVariant) dto.PublicProduct {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.PublicProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		IsFeatured:  p.IsFeatured,
		Tags:        tags,
		Variants:    variants,
	}
}

// truncate limita s a n bytes sin partir un carácter; descarta secuencias UTF-8 inválidas.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
