package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/menu"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
)

// ── Categorías ───────────────────────────────────────────────────────────────

func TestCategory_CreateAppendsAndInvalidatesCache(t *testing.T) {
	cats := newMemCategories(&entity.Category{ID: "c1", RestaurantID: "r1", Position: 0})
	cache := &spyCache{}
	uc := NewCategoryUseCase(cats, cache)

	out, err := uc.Create(context.Background(), "r1", dto.CategoryRequest{Name: "  Postres "})
	require.NoError(t, err)
	assert.Equal(t, "Postres", out.Name)
	assert.Equal(t, 1, out.Position)
	assert.True(t, out.IsActive)
	assert.Equal(t, []string{menu.CacheKey("r1")}, cache.deleted)

	_, err = uc.Create(context.Background(), "r1", dto.CategoryRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory_UpdateOtherTenantIsNotFound(t *testing.T) {
	cats := newMemCategories(&entity.Category{ID: "c1", RestaurantID: "r1"})
	uc := NewCategoryUseCase(cats, nil)

	_, err := uc.Update(context.Background(), "r2", "c1", dto.CategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_Reorder(t *testing.T) {
	cats := newMemCategories(
		&entity.Category{ID: "a", RestaurantID: "r1", Position: 0},
		&entity.Category{ID: "b", RestaurantID: "r1", Position: 1},
	)
	uc := NewCategoryUseCase(cats, nil)
	ctx := context.Background()

	require.NoError(t, uc.Reorder(ctx, "r1", []string{"b", "a"}))
	assert.Equal(t, 0, cats.items["b"].Position)
	assert.Equal(t, 1, cats.items["a"].Position)

	assert.ErrorIs(t, uc.Reorder(ctx, "r1", []string{"a"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Reorder(ctx, "r1", []string{"a", "a"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Reorder(ctx, "r1", []string{"a", "zz"}), domain.ErrInvalidInput)
}

// ── Productos y variantes ────────────────────────────────────────────────────

func newCatalog() (*ProductUseCase, *VariantUseCase, *memProducts, *memStorage, *spyCache) {
	cats := newMemCategories(&entity.Category{ID: "c1", RestaurantID: "r1"}, &entity.Category{ID: "c9", RestaurantID: "r9"})
	products := &memProducts{items: map[string]*entity.Product{}}
	variants := &memVariants{}
	storage := &memStorage{saved: map[string]string{}}
	cache := &spyCache{}
	return NewProductUseCase(products, cats, variants, storage, cache),
		NewVariantUseCase(variants, products, cache),
		products, storage, cache
}

func TestProduct_CreateValidatesCategoryAndPrice(t *testing.T) {
	uc, _, _, _, cache := newCatalog()
	ctx := context.Background()

	out, err := uc.Create(ctx, "r1", dto.ProductRequest{
		CategoryID: "c1", Name: "Bandeja", Price: decimal.RequireFromString("32000"), Tags: []string{"Típico", "típico", " "},
	})
	require.NoError(t, err)
	assert.True(t, out.IsAvailable)
	assert.Equal(t, []string{"típico"}, out.Tags)
	assert.Len(t, cache.deleted, 1)

	_, err = uc.Create(ctx, "r1", dto.ProductRequest{CategoryID: "c9", Name: "X", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "categoría de otro restaurante")

	_, err = uc.Create(ctx, "r1", dto.ProductRequest{CategoryID: "c1", Name: "X", Price: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_ToggleAvailability(t *testing.T) {
	uc, _, products, _, _ := newCatalog()
	products.items["p1"] = &entity.Product{ID: "p1", RestaurantID: "r1", CategoryID: "c1", IsAvailable: true}

	out, err := uc.ToggleAvailability(context.Background(), "r1", "p1")
	require.NoError(t, err)
	assert.False(t, out.IsAvailable)
	assert.False(t, products.items["p1"].IsAvailable)

	_, err = uc.ToggleAvailability(context.Background(), "r2", "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_UploadImage(t *testing.T) {
	uc, _, products, storage, _ := newCatalog()
	products.items["p1"] = &entity.Product{ID: "p1", RestaurantID: "r1", CategoryID: "c1"}
	ctx := context.Background()

	body := []byte("fake-png")
	out, err := uc.UploadImage(ctx, "r1", "p1", ImageUpload{ContentType: "image/png", Size: int64(len(body)), Body: bytes.NewReader(body)})
	require.NoError(t, err)
	assert.Contains(t, out.URL, "restaurants/r1/product-")
	assert.Equal(t, out.URL, products.items["p1"].ImageURL)
	assert.Len(t, storage.saved, 1)

	_, err = uc.UploadImage(ctx, "r1", "p1", ImageUpload{ContentType: "application/pdf", Size: 10, Body: bytes.NewReader(body)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadImage(ctx, "r1", "p1", ImageUpload{ContentType: "image/jpeg", Size: MaxImageBytes + 1, Body: bytes.NewReader(body)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVariant_CreateAndGetProductWithVariants(t *testing.T) {
	products, variants, store, _, _ := newCatalog()
	store.items["p1"] = &entity.Product{ID: "p1", RestaurantID: "r1", CategoryID: "c1"}
	ctx := context.Background()

	_, err := variants.Create(ctx, "r1", "p1", dto.VariantRequest{Name: "Grande", Price: decimal.RequireFromString("12000")})
	require.NoError(t, err)

	_, err = variants.Create(ctx, "r2", "p1", dto.VariantRequest{Name: "Grande"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := products.Get(ctx, "r1", "p1")
	require.NoError(t, err)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, "Grande", got.Variants[0].Name)
}

// ── Restaurante ──────────────────────────────────────────────────────────────

func TestRestaurant_UpdateSlugAndTheme(t *testing.T) {
	repo := &memRestaurants{byID: map[string]*entity.Restaurant{
		"r1": {ID: "r1", Slug: "la-esquina", Name: "La Esquina", SubscriptionEndDate: time.Now().Add(48 * time.Hour)},
		"r2": {ID: "r2", Slug: "el-rincon"},
	}}
	uc := NewRestaurantUseCase(repo, nil, "https://menuqr.app")
	ctx := context.Background()

	taken := "El Rincón"
	_, err := uc.Update(ctx, "r1", dto.UpdateRestaurantRequest{Slug: &taken})
	assert.ErrorIs(t, err, domain.ErrSlugTaken)

	fresh, color := "Nueva Esquina", "#1E40AF"
	out, err := uc.Update(ctx, "r1", dto.UpdateRestaurantRequest{Slug: &fresh, ThemeColor: &color})
	require.NoError(t, err)
	assert.Equal(t, "nueva-esquina", out.Slug)
	assert.Equal(t, "https://menuqr.app/menu/nueva-esquina", out.MenuURL)
	assert.Equal(t, "#1e40af", out.ThemeColor)

	bad := "azul"
	_, err = uc.Update(ctx, "r1", dto.UpdateRestaurantRequest{ThemeColor: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestaurant_UploadLogo(t *testing.T) {
	repo := &memRestaurants{byID: map[string]*entity.Restaurant{"r1": {ID: "r1", Slug: "x"}}}
	storage := &memStorage{saved: map[string]string{}}
	uc := NewRestaurantUseCase(repo, storage, "")

	out, err := uc.UploadImage(context.Background(), "r1", ImageLogo, ImageUpload{ContentType: "image/webp", Size: 3, Body: bytes.NewReader([]byte("abc"))})
	require.NoError(t, err)
	assert.Equal(t, out.URL, repo.byID["r1"].LogoURL)

	_, err = uc.UploadImage(context.Background(), "r1", "banner", ImageUpload{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
