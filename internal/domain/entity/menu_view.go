package entity

import "time"

// MenuView registra una visualización del menú público. Solo se inserta; nunca se actualiza.
type MenuView struct {
	ID           string
	RestaurantID string
	ViewedAt     time.Time
	UserAgent    string
	Language     string
}

// NewsletterSubscriber es un correo suscrito al boletín de la plataforma.
type NewsletterSubscriber struct {
	ID        string
	Email     string
	IsActive  bool
	CreatedAt time.Time
}
