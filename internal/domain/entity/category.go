package entity

import "time"

// Category agrupa productos de la carta de un restaurante (ej. Entradas, Bebidas).
type Category struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	Position     int // orden de aparición en el menú
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
