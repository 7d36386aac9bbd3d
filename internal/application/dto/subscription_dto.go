package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatusResponse estado de suscripción; Status ya viene reconciliado con la fecha.
type SubscriptionStatusResponse struct {
	Plan          string    `json:"plan"`
	Status        string    `json:"status"`
	StoredStatus  string    `json:"stored_status"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	AutoRenew     bool      `json:"auto_renew"`
	IsExpired     bool      `json:"is_expired"`
	DaysRemaining int       `json:"days_remaining"`
}

// SetAutoRenewRequest activa o desactiva la renovación automática.
type SetAutoRenewRequest struct {
	AutoRenew bool `json:"auto_renew"`
}

// ChangePlanRequest asignación manual de plan por el super-admin.
// Si StartDate es nil el período empieza ahora.
type ChangePlanRequest struct {
	Plan      string           `json:"plan" validate:"required,oneof=TRIAL MONTHLY YEARLY"`
	StartDate *time.Time       `json:"start_date"`
	Amount    *decimal.Decimal `json:"amount"`
	AutoRenew *bool            `json:"auto_renew"`
	Notes     string           `json:"notes"`
}

// SubscriptionHistoryResponse un período del historial.
type SubscriptionHistoryResponse struct {
	ID        string          `json:"id"`
	Plan      string          `json:"plan"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExpireSweepResponse resultado de la pasada de vencimiento.
type ExpireSweepResponse struct {
	Updated int `json:"updated"`
}

// RenewSweepResponse resultado de la pasada de renovación.
type RenewSweepResponse struct {
	Renewed int `json:"renewed"`
}
