package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
	policy "github.com/jhoicas/MenuQR-api/internal/domain/subscription"
)

// AdminUseCase vista de plataforma para el SUPER_ADMIN.
type AdminUseCase struct {
	restaurants   repository.RestaurantRepository
	subscriptions *subscription.SubscriptionUseCase
	baseURL       string
	now           func() time.Time
}

func NewAdminUseCase(restaurants repository.RestaurantRepository, subscriptions *subscription.SubscriptionUseCase, baseURL string) *AdminUseCase {
	return &AdminUseCase{restaurants: restaurants, subscriptions: subscriptions, baseURL: baseURL, now: time.Now}
}

// List lista restaurantes filtrando por estado almacenado, plan y texto.
func (uc *AdminUseCase) List(ctx context.Context, req dto.RestaurantListRequest) (*dto.RestaurantListResponse, error) {
	req.DefaultPage()
	if req.Plan != "" && !policy.ValidPlan(req.Plan) {
		return nil, invalid("plan desconocido")
	}
	switch req.Status {
	case "", entity.SubscriptionActive, entity.SubscriptionExpired, entity.SubscriptionCancelled:
	default:
		return nil, invalid("status desconocido")
	}
	list, total, err := uc.restaurants.List(ctx, repository.RestaurantFilter{
		Status: req.Status,
		Plan:   req.Plan,
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	items := make([]dto.RestaurantResponse, 0, len(list))
	for _, r := range list {
		items = append(items, ToRestaurantResponse(r, uc.baseURL, now))
	}
	return &dto.RestaurantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: req.Limit, Offset: req.Offset, Total: total},
	}, nil
}

func (uc *AdminUseCase) Get(ctx context.Context, id string) (*dto.RestaurantResponse, error) {
	r, err := loadRestaurant(ctx, uc.restaurants, id)
	if err != nil {
		return nil, err
	}
	out := ToRestaurantResponse(r, uc.baseURL, uc.now())
	return &out, nil
}

// SetActive activa o suspende el restaurante. No altera la suscripción.
func (uc *AdminUseCase) SetActive(ctx context.Context, id string, active bool) (*dto.RestaurantResponse, error) {
	if _, err := loadRestaurant(ctx, uc.restaurants, id); err != nil {
		return nil, err
	}
	if err := uc.restaurants.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// ChangePlan asigna un período manualmente y devuelve el restaurante actualizado.
func (uc *AdminUseCase) ChangePlan(ctx context.Context, id string, req dto.ChangePlanRequest) (*dto.RestaurantResponse, error) {
	if _, err := uc.subscriptions.ChangePlan(ctx, id, req); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Stats totales de restaurantes por estado de suscripción almacenado.
func (uc *AdminUseCase) Stats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	byStatus, err := uc.restaurants.CountBySubscriptionStatus(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range byStatus {
		total += n
	}
	return &dto.PlatformStatsResponse{TotalRestaurants: total, ByStatus: byStatus}, nil
}
