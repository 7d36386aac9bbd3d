package subscription

import (
	"testing"
	"time"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func restaurant(status string, end time.Time) *entity.Restaurant {
	return &entity.Restaurant{
		ID:                  "r1",
		IsActive:            true,
		SubscriptionPlan:    entity.PlanMonthly,
		SubscriptionStatus:  status,
		SubscriptionEndDate: end,
		AutoRenew:           true,
	}
}

// ── IsExpired ────────────────────────────────────────────────────────────────

func TestIsExpired_IsStatusOrDate(t *testing.T) {
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	cases := []struct {
		name   string
		status string
		end    time.Time
		want   bool
	}{
		{"activo con fecha futura", entity.SubscriptionActive, future, false},
		{"activo con fecha pasada (estado atrasado)", entity.SubscriptionActive, past, true},
		{"expirado con fecha futura", entity.SubscriptionExpired, future, true},
		{"expirado con fecha pasada", entity.SubscriptionExpired, past, true},
		{"fin exactamente ahora no está vencido", entity.SubscriptionActive, now, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsExpired(restaurant(tc.status, tc.end), now))
		})
	}
}

func TestIsExpired_NilRestaurant(t *testing.T) {
	assert.True(t, IsExpired(nil, now))
}

func TestEffectiveStatus(t *testing.T) {
	assert.Equal(t, entity.SubscriptionExpired, EffectiveStatus(restaurant(entity.SubscriptionActive, now.Add(-time.Second)), now))
	assert.Equal(t, entity.SubscriptionActive, EffectiveStatus(restaurant(entity.SubscriptionActive, now.Add(time.Second)), now))
	assert.Equal(t, entity.SubscriptionCancelled, EffectiveStatus(restaurant(entity.SubscriptionCancelled, now.Add(-time.Second)), now))
}

// ── AddMonths ────────────────────────────────────────────────────────────────

func TestAddMonths_CalendarAware(t *testing.T) {
	cases := []struct {
		in, want time.Time
	}{
		{time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)},
		{time.Date(2023, 1, 31, 10, 0, 0, 0, time.UTC), time.Date(2023, 2, 28, 10, 0, 0, 0, time.UTC)},
		{time.Date(2024, 12, 15, 8, 30, 0, 0, time.UTC), time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC)},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AddMonths(tc.in, 1), tc.in.String())
	}
}

func TestAddMonths_MultipleAndNegative(t *testing.T) {
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 12))
	assert.Equal(t, time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC), AddMonths(jan31, -2))
}

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), PeriodEnd(entity.PlanMonthly, start, 14))
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), PeriodEnd(entity.PlanYearly, start, 14))
	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), PeriodEnd(entity.PlanTrial, start, 14))
}

// ── Renovación ───────────────────────────────────────────────────────────────

func TestInRenewWindow_InclusiveBounds(t *testing.T) {
	w := DefaultRenewWindow
	assert.True(t, InRenewWindow(restaurant(entity.SubscriptionActive, now), now, w))
	assert.True(t, InRenewWindow(restaurant(entity.SubscriptionActive, now.Add(12*time.Hour)), now, w))
	assert.True(t, InRenewWindow(restaurant(entity.SubscriptionActive, now.Add(w)), now, w))
	assert.False(t, InRenewWindow(restaurant(entity.SubscriptionActive, now.Add(w+time.Second)), now, w))
	assert.False(t, InRenewWindow(restaurant(entity.SubscriptionActive, now.Add(-time.Second)), now, w))
}

func TestIsRenewable(t *testing.T) {
	end := now.Add(12 * time.Hour)

	ok := restaurant(entity.SubscriptionActive, end)
	assert.True(t, IsRenewable(ok, now, DefaultRenewWindow))

	noAuto := restaurant(entity.SubscriptionActive, end)
	noAuto.AutoRenew = false
	assert.False(t, IsRenewable(noAuto, now, DefaultRenewWindow))

	yearly := restaurant(entity.SubscriptionActive, end)
	yearly.SubscriptionPlan = entity.PlanYearly
	assert.False(t, IsRenewable(yearly, now, DefaultRenewWindow))

	expired := restaurant(entity.SubscriptionExpired, end)
	assert.False(t, IsRenewable(expired, now, DefaultRenewWindow))
}

func TestValidPlan(t *testing.T) {
	assert.True(t, ValidPlan(entity.PlanTrial))
	assert.True(t, ValidPlan(entity.PlanMonthly))
	assert.True(t, ValidPlan(entity.PlanYearly))
	assert.False(t, ValidPlan("WEEKLY"))
}
