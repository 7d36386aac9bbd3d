package usecase

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

// ── Repositorios en memoria ──────────────────────────────────────────────────

type memRestaurants struct {
	repository.RestaurantRepository
	byID map[string]*entity.Restaurant
}

func (m *memRestaurants) GetByID(_ context.Context, id string) (*entity.Restaurant, error) {
	if r, ok := m.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *memRestaurants) SlugExists(_ context.Context, s string) (bool, error) {
	for _, r := range m.byID {
		if r.Slug == s {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRestaurants) Update(_ context.Context, r *entity.Restaurant) error {
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *memRestaurants) SetActive(_ context.Context, id string, active bool) error {
	m.byID[id].IsActive = active
	return nil
}

type memCategories struct {
	repository.CategoryRepository
	items map[string]*entity.Category
	order []string
}

func newMemCategories(cats ...*entity.Category) *memCategories {
	m := &memCategories{items: map[string]*entity.Category{}}
	for _, c := range cats {
		m.items[c.ID] = c
	}
	return m
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	m.items[c.ID] = c
	return nil
}

func (m *memCategories) GetByID(_ context.Context, restaurantID, id string) (*entity.Category, error) {
	if c, ok := m.items[id]; ok && c.RestaurantID == restaurantID {
		return c, nil
	}
	return nil, nil
}

func (m *memCategories) ListByRestaurant(_ context.Context, restaurantID string, _ bool) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range m.items {
		if c.RestaurantID == restaurantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memCategories) Update(_ context.Context, c *entity.Category) error {
	m.items[c.ID] = c
	return nil
}

func (m *memCategories) Delete(_ context.Context, restaurantID, id string) error {
	if c, ok := m.items[id]; !ok || c.RestaurantID != restaurantID {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memCategories) Reorder(_ context.Context, _ string, ids []string) error {
	m.order = ids
	for i, id := range ids {
		m.items[id].Position = i
	}
	return nil
}

type memProducts struct {
	repository.ProductRepository
	items map[string]*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.items[p.ID] = p
	return nil
}

func (m *memProducts) GetByID(_ context.Context, restaurantID, id string) (*entity.Product, error) {
	if p, ok := m.items[id]; ok && p.RestaurantID == restaurantID {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.items[p.ID] = p
	return nil
}

type memVariants struct {
	repository.VariantRepository
	items []*entity.Variant
}

func (m *memVariants) Create(_ context.Context, v *entity.Variant) error {
	m.items = append(m.items, v)
	return nil
}

func (m *memVariants) ListByProduct(_ context.Context, _, productID string) ([]*entity.Variant, error) {
	var out []*entity.Variant
	for _, v := range m.items {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

// ── Puertos de salida ────────────────────────────────────────────────────────

type spyCache struct {
	deleted []string
}

func (s *spyCache) Get(context.Context, string) ([]byte, bool, error)       { return nil, false, nil }
func (s *spyCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (s *spyCache) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

type memStorage struct {
	saved map[string]string
}

func (m *memStorage) Save(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	m.saved[key] = contentType
	return "https://cdn.test/" + key, nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	delete(m.saved, key)
	return nil
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg ports.Email) error {
	return m.Called(ctx, msg).Error(0)
}

type mockLLM struct{ mock.Mock }

func (m *mockLLM) GenerateProductDescription(ctx context.Context, req dto.AIDescriptionRequest) (*dto.AIDescriptionResponse, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*dto.AIDescriptionResponse)
	return out, args.Error(1)
}
