package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Planes de suscripción.
const (
	PlanTrial   = "TRIAL"
	PlanMonthly = "MONTHLY"
	PlanYearly  = "YEARLY"
)

// Estados de suscripción persistidos.
const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionCancelled = "CANCELLED"
)

// Restaurant es el tenant del sistema: tiene un slug público, su carta y su suscripción.
type Restaurant struct {
	ID          string
	Name        string
	Slug        string // único, usado en /menu/:slug
	Description string
	Address     string
	Phone       string
	Email       string
	LogoURL     string
	CoverURL    string
	Currency    string // ISO 4217, ej. COP, USD
	ThemeColor  string // hex, ej. #e11d48
	IsActive    bool

	SubscriptionPlan      string
	SubscriptionStatus    string
	SubscriptionStartDate time.Time
	SubscriptionEndDate   time.Time
	AutoRenew             bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubscriptionHistory es un registro inmutable de cada período de suscripción otorgado.
type SubscriptionHistory struct {
	ID           string
	RestaurantID string
	Plan         string
	StartDate    time.Time
	EndDate      time.Time
	Amount       decimal.Decimal
	Notes        string
	CreatedAt    time.Time
}
