// Package subscription contiene la política pura de vencimiento y renovación de suscripciones.
// Ninguna función tiene efectos secundarios; quien llama decide si persiste el estado reconciliado.
package subscription

import (
	"time"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
)

// DefaultRenewWindow ventana de auto-renovación: fin de suscripción dentro de [now, now+24h].
const DefaultRenewWindow = 24 * time.Hour

// IsExpired es verdadero si el estado guardado es EXPIRED o si la fecha de fin ya pasó.
// El estado persistido es una caché de la comparación de fechas y puede ir atrasado.
func IsExpired(r *entity.Restaurant, now time.Time) bool {
	if r == nil {
		return true
	}
	return r.SubscriptionStatus == entity.SubscriptionExpired || r.SubscriptionEndDate.Before(now)
}

// EffectiveStatus devuelve el estado reconciliado con la fecha actual.
func EffectiveStatus(r *entity.Restaurant, now time.Time) string {
	if r.SubscriptionStatus == entity.SubscriptionCancelled {
		return entity.SubscriptionCancelled
	}
	if IsExpired(r, now) {
		return entity.SubscriptionExpired
	}
	return entity.SubscriptionActive
}

// InRenewWindow indica si el fin de la suscripción cae en [now, now+window], ambos inclusive.
func InRenewWindow(r *entity.Restaurant, now time.Time, window time.Duration) bool {
	end := r.SubscriptionEndDate
	return !end.Before(now) && !end.After(now.Add(window))
}

// IsRenewable combina las condiciones de auto-renovación: MONTHLY, ACTIVE, autoRenew y fin en ventana.
func IsRenewable(r *entity.Restaurant, now time.Time, window time.Duration) bool {
	return r.AutoRenew &&
		r.SubscriptionStatus == entity.SubscriptionActive &&
		r.SubscriptionPlan == entity.PlanMonthly &&
		InRenewWindow(r, now, window)
}

// AddMonths suma n meses calendario. Si el día no existe en el mes destino se ajusta al último día
// (31 ene + 1 = 28/29 feb). Conserva la hora y la zona de t.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	first := time.Date(y, m+time.Month(n), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// PeriodEnd calcula el fin del período que comienza en start para el plan dado.
func PeriodEnd(plan string, start time.Time, trialDays int) time.Time {
	switch plan {
	case entity.PlanYearly:
		return AddMonths(start, 12)
	case entity.PlanMonthly:
		return AddMonths(start, 1)
	default:
		return start.AddDate(0, 0, trialDays)
	}
}

// ValidPlan indica si p es un plan reconocido.
func ValidPlan(p string) bool {
	switch p {
	case entity.PlanTrial, entity.PlanMonthly, entity.PlanYearly:
		return true
	}
	return false
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}
