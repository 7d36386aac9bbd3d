package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un plato o bebida de la carta.
type Product struct {
	ID           string
	RestaurantID string
	CategoryID   string
	Name         string
	Description  string
	Price        decimal.Decimal
	ImageURL     string
	IsAvailable  bool
	IsFeatured   bool
	Position     int
	Tags         []string // ej. vegano, picante, sin-gluten
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Variant es una presentación alternativa de un producto (tamaño, porción) con su propio precio.
type Variant struct {
	ID           string
	ProductID    string
	RestaurantID string
	Name         string
	Price        decimal.Decimal
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
