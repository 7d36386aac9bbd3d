package subscription

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
	policy "github.com/jhoicas/MenuQR-api/internal/domain/subscription"
)

// SubscriptionUseCase consulta y cambios explícitos de suscripción (propietario y super-admin).
type SubscriptionUseCase struct {
	restaurants   repository.RestaurantRepository
	history       repository.SubscriptionHistoryRepository
	tx            TxRunner
	monthlyAmount decimal.Decimal
	trialDays     int
	now           func() time.Time
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(
	restaurants repository.RestaurantRepository,
	history repository.SubscriptionHistoryRepository,
	tx TxRunner,
	monthlyAmount decimal.Decimal,
	trialDays int,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		restaurants:   restaurants,
		history:       history,
		tx:            tx,
		monthlyAmount: monthlyAmount,
		trialDays:     trialDays,
		now:           time.Now,
	}
}

// GetStatus devuelve el estado reconciliado con la fecha actual (no persiste nada).
func (uc *SubscriptionUseCase) GetStatus(ctx context.Context, restaurantID string) (*dto.SubscriptionStatusResponse, error) {
	r, err := uc.load(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	st := ToStatusResponse(r, uc.now())
	return &st, nil
}

// SetAutoRenew activa o desactiva la renovación automática.
// Escribe solo la bandera; el estado devuelto se relee después de escribir.
func (uc *SubscriptionUseCase) SetAutoRenew(ctx context.Context, restaurantID string, autoRenew bool) (*dto.SubscriptionStatusResponse, error) {
	if err := uc.restaurants.SetAutoRenew(ctx, restaurantID, autoRenew); err != nil {
		return nil, err
	}
	return uc.GetStatus(ctx, restaurantID)
}

// ChangePlan asigna un nuevo período (super-admin), reactiva el restaurante y lo anota en el historial.
func (uc *SubscriptionUseCase) ChangePlan(ctx context.Context, restaurantID string, req dto.ChangePlanRequest) (*dto.SubscriptionStatusResponse, error) {
	if !policy.ValidPlan(req.Plan) {
		return nil, fmt.Errorf("%w: plan %q", domain.ErrInvalidInput, req.Plan)
	}
	r, err := uc.load(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	start := now
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := policy.PeriodEnd(req.Plan, start, uc.trialDays)

	amount := uc.amountFor(req.Plan)
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount negativo", domain.ErrInvalidInput)
		}
		amount = *req.Amount
	}

	r.SubscriptionPlan = req.Plan
	r.SubscriptionStartDate = start
	r.SubscriptionEndDate = end
	r.SubscriptionStatus = entity.SubscriptionActive
	if end.Before(now) {
		r.SubscriptionStatus = entity.SubscriptionExpired
	}
	r.IsActive = r.SubscriptionStatus == entity.SubscriptionActive
	if req.AutoRenew != nil {
		r.AutoRenew = *req.AutoRenew
	}
	r.UpdatedAt = now

	notes := req.Notes
	if notes == "" {
		notes = "Cambio de plan manual"
	}
	err = uc.tx.RunRenewal(ctx, func(store RenewalStore) error {
		if err := store.UpdateSubscription(ctx, r); err != nil {
			return err
		}
		return store.AppendHistory(ctx, &entity.SubscriptionHistory{
			ID:           uuid.New().String(),
			RestaurantID: r.ID,
			Plan:         r.SubscriptionPlan,
			StartDate:    start,
			EndDate:      end,
			Amount:       amount,
			Notes:        notes,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}
	st := ToStatusResponse(r, now)
	return &st, nil
}

// ListHistory devuelve el historial de períodos, más reciente primero.
func (uc *SubscriptionUseCase) ListHistory(ctx context.Context, restaurantID string) ([]dto.SubscriptionHistoryResponse, error) {
	if _, err := uc.load(ctx, restaurantID); err != nil {
		return nil, err
	}
	list, err := uc.history.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubscriptionHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.SubscriptionHistoryResponse{
			ID:        h.ID,
			Plan:      h.Plan,
			StartDate: h.StartDate,
			EndDate:   h.EndDate,
			Amount:    h.Amount,
			Notes:     h.Notes,
			CreatedAt: h.CreatedAt,
		})
	}
	return out, nil
}

func (uc *SubscriptionUseCase) load(ctx context.Context, restaurantID string) (*entity.Restaurant, error) {
	r, err := uc.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRestaurantNotFound
	}
	return r, nil
}

func (uc *SubscriptionUseCase) amountFor(plan string) decimal.Decimal {
	switch plan {
	case entity.PlanMonthly:
		return uc.monthlyAmount
	case entity.PlanYearly:
		return uc.monthlyAmount.Mul(decimal.NewFromInt(12))
	default:
		return decimal.Zero
	}
}

// ToStatusResponse arma el estado de suscripción usando la política como fuente de verdad.
func ToStatusResponse(r *entity.Restaurant, now time.Time) dto.SubscriptionStatusResponse {
	days := 0
	if left := r.SubscriptionEndDate.Sub(now); left > 0 {
		days = int(math.Ceil(left.Hours() / 24))
	}
	return dto.SubscriptionStatusResponse{
		Plan:          r.SubscriptionPlan,
		Status:        policy.EffectiveStatus(r, now),
		StoredStatus:  r.SubscriptionStatus,
		StartDate:     r.SubscriptionStartDate,
		EndDate:       r.SubscriptionEndDate,
		AutoRenew:     r.AutoRenew,
		IsExpired:     policy.IsExpired(r, now),
		DaysRemaining: days,
	}
}
