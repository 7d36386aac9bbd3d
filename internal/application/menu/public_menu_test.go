package menu

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeRestaurants struct {
	repository.RestaurantRepository
	bySlug map[string]*entity.Restaurant
}

func (f *fakeRestaurants) GetBySlug(_ context.Context, slug string) (*entity.Restaurant, error) {
	return f.bySlug[slug], nil
}

func (f *fakeRestaurants) GetByID(_ context.Context, id string) (*entity.Restaurant, error) {
	for _, r := range f.bySlug {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

type fakeCategories struct {
	repository.CategoryRepository
	list  []*entity.Category
	calls int
}

func (f *fakeCategories) ListByRestaurant(context.Context, string, bool) ([]*entity.Category, error) {
	f.calls++
	return f.list, nil
}

type fakeProducts struct {
	repository.ProductRepository
	list []*entity.Product
}

func (f *fakeProducts) ListByRestaurant(context.Context, string, string, bool) ([]*entity.Product, error) {
	return f.list, nil
}

type fakeVariants struct {
	repository.VariantRepository
	list []*entity.Variant
}

func (f *fakeVariants) ListByRestaurant(context.Context, string) ([]*entity.Variant, error) {
	return f.list, nil
}

type fakeViews struct {
	repository.MenuViewRepository
	created []*entity.MenuView
	err     error
}

func (f *fakeViews) Create(_ context.Context, v *entity.MenuView) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, v)
	return nil
}

type memCache struct {
	data map[string][]byte
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc    *PublicMenuUseCase
	views *fakeViews
	cats  *fakeCategories
	cache *memCache
}

func newFixture(withCache bool) *fixture {
	restaurants := &fakeRestaurants{bySlug: map[string]*entity.Restaurant{
		"abierto": {ID: "r1", Slug: "abierto", Name: "Abierto", IsActive: true,
			SubscriptionStatus: entity.SubscriptionActive, SubscriptionEndDate: now.Add(72 * time.Hour)},
		"inactivo": {ID: "r2", Slug: "inactivo", IsActive: false,
			SubscriptionStatus: entity.SubscriptionActive, SubscriptionEndDate: now.Add(72 * time.Hour)},
		"vencido-por-fecha": {ID: "r3", Slug: "vencido-por-fecha", IsActive: true,
			SubscriptionStatus: entity.SubscriptionActive, SubscriptionEndDate: now.Add(-time.Minute)},
		"vencido": {ID: "r4", Slug: "vencido", IsActive: true,
			SubscriptionStatus: entity.SubscriptionExpired, SubscriptionEndDate: now.Add(72 * time.Hour)},
	}}
	cats := &fakeCategories{list: []*entity.Category{
		{ID: "c1", Name: "Entradas", Position: 0, IsActive: true},
		{ID: "c2", Name: "Vacía", Position: 1, IsActive: true},
		{ID: "c3", Name: "Bebidas", Position: 2, IsActive: true},
	}}
	products := &fakeProducts{list: []*entity.Product{
		{ID: "p1", CategoryID: "c1", Name: "Empanadas", Price: decimal.RequireFromString("8000"), IsAvailable: true},
		{ID: "p2", CategoryID: "c3", Name: "Limonada", Price: decimal.RequireFromString("6000"), IsAvailable: true},
	}}
	variants := &fakeVariants{list: []*entity.Variant{
		{ID: "v1", ProductID: "p2", Name: "Jarra", Price: decimal.RequireFromString("15000")},
	}}
	views := &fakeViews{}

	var cache *memCache
	f := &fixture{views: views, cats: cats}
	repos := Repositories{Restaurants: restaurants, Categories: cats, Products: products, Variants: variants, Views: views}
	if withCache {
		cache = &memCache{data: map[string][]byte{}}
		f.uc = NewPublicMenuUseCase(repos, cache, time.Minute, zerolog.Nop())
	} else {
		f.uc = NewPublicMenuUseCase(repos, nil, 0, zerolog.Nop())
	}
	f.cache = cache
	f.uc.now = func() time.Time { return now }
	return f
}

// ── Render ───────────────────────────────────────────────────────────────────

func TestRender_ActiveRestaurant_BuildsMenuAndLogsView(t *testing.T) {
	f := newFixture(false)
	out, err := f.uc.Render(context.Background(), "abierto", dto.Viewer{UserAgent: "Mozilla", Language: "es-CO,es;q=0.9,en;q=0.8"})
	require.NoError(t, err)

	assert.Equal(t, "Abierto", out.Restaurant.Name)
	require.Len(t, out.Categories, 2, "las categorías sin productos no se muestran")
	assert.Equal(t, "Entradas", out.Categories[0].Name)
	assert.Equal(t, "Bebidas", out.Categories[1].Name)
	require.Len(t, out.Categories[1].Products[0].Variants, 1)
	assert.Equal(t, "Jarra", out.Categories[1].Products[0].Variants[0].Name)

	require.Len(t, f.views.created, 1)
	v := f.views.created[0]
	assert.Equal(t, "r1", v.RestaurantID)
	assert.Equal(t, now, v.ViewedAt)
	assert.Equal(t, "es", v.Language)
	assert.Equal(t, "Mozilla", v.UserAgent)
}

func TestRender_RestrictedResults_DoNotLogViews(t *testing.T) {
	f := newFixture(false)
	cases := map[string]error{
		"inactivo":          domain.ErrRestaurantInactive,
		"vencido-por-fecha": domain.ErrSubscriptionExpired,
		"vencido":           domain.ErrSubscriptionExpired,
		"no-existe":         domain.ErrNotFound,
	}
	for slug, want := range cases {
		out, err := f.uc.Render(context.Background(), slug, dto.Viewer{})
		assert.ErrorIs(t, err, want, slug)
		assert.Nil(t, out, slug)
	}
	assert.Empty(t, f.views.created)
	assert.Zero(t, f.cats.calls, "no se lee contenido del menú para resultados restringidos")
}

func TestRender_ViewLogFailureIsSwallowed(t *testing.T) {
	f := newFixture(false)
	f.views.err = errors.New("insert failed")

	out, err := f.uc.Render(context.Background(), "abierto", dto.Viewer{})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Categories)
}

func TestRender_UsesCacheAndInvalidate(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	_, err := f.uc.Render(ctx, "abierto", dto.Viewer{})
	require.NoError(t, err)
	_, err = f.uc.Render(ctx, "abierto", dto.Viewer{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.cats.calls)
	assert.Len(t, f.views.created, 2, "cada render registra su vista aunque venga de caché")

	Invalidate(ctx, f.cache, "r1")
	_, err = f.uc.Render(ctx, "abierto", dto.Viewer{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.cats.calls)
}

func TestPrimaryLanguage(t *testing.T) {
	assert.Equal(t, "es", PrimaryLanguage("es-CO,es;q=0.9"))
	assert.Equal(t, "en", PrimaryLanguage("en-US"))
	assert.Equal(t, "", PrimaryLanguage(""))
}

func TestRender_LongUserAgentKeepsValidUTF8(t *testing.T) {
	f := newFixture(false)
	// 511 bytes ASCII + "ñ" (2 bytes): el corte en 512 caería en medio del carácter.
	ua := strings.Repeat("a", 511) + "ñ" + "resto"

	_, err := f.uc.Render(context.Background(), "abierto", dto.Viewer{UserAgent: ua})
	require.NoError(t, err)

	require.Len(t, f.views.created, 1)
	got := f.views.created[0].UserAgent
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 511), got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 512))
	assert.Equal(t, "añ", truncate("añb", 3))
	assert.Equal(t, "a", truncate("añb", 2))
	assert.Equal(t, "", truncate("ñ", 1))
	assert.Equal(t, "ab", truncate("a\xffb", 10))
}
