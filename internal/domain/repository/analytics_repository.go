package repository

import (
	"context"
	"time"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
)

// DailyViews conteo de vistas por día calendario (UTC).
type DailyViews struct {
	Day   time.Time
	Views int
}

// LanguageViews conteo de vistas por idioma del navegador.
type LanguageViews struct {
	Language string
	Views    int
}

// MenuViewRepository registra y consulta las vistas del menú público.
// Las consultas son read-only y siempre acotadas por restaurante y rango [from, to).
type MenuViewRepository interface {
	Create(ctx context.Context, v *entity.MenuView) error
	Count(ctx context.Context, restaurantID string, from, to time.Time) (int, error)
	CountByDay(ctx context.Context, restaurantID string, from, to time.Time) ([]DailyViews, error)
	CountByLanguage(ctx context.Context, restaurantID string, from, to time.Time) ([]LanguageViews, error)
	List(ctx context.Context, restaurantID string, from, to time.Time) ([]*entity.MenuView, error)
}

// NewsletterRepository persiste suscriptores del boletín.
type NewsletterRepository interface {
	// Upsert inserta o reactiva el correo. created=false si ya existía activo.
	Upsert(ctx context.Context, s *entity.NewsletterSubscriber) (created bool, err error)
	List(ctx context.Context, limit, offset int) ([]*entity.NewsletterSubscriber, error)
}
