package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

var _ repository.MenuViewRepository = (*MenuViewRepo)(nil)

// MenuViewRepo registro y consultas de lectura sobre menu_views.
type MenuViewRepo struct {
	pool *pgxpool.Pool
}

// NewMenuViewRepository construye el adaptador de analítica de vistas.
func NewMenuViewRepository(pool *pgxpool.Pool) *MenuViewRepo {
	return &MenuViewRepo{pool: pool}
}

// Create inserta una vista. Es la única escritura sobre la tabla.
func (r *MenuViewRepo) Create(ctx context.Context, v *entity.MenuView) error {
	const query = `
	INSERT INTO menu_views (id, restaurant_id, viewed_at, user_agent, language)
	VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.pool.Exec(ctx, query, v.ID, v.RestaurantID, v.ViewedAt, v.UserAgent, v.Language); err != nil {
		return fmt.Errorf("analytics.Create: %w", err)
	}
	return nil
}

// Count total de vistas en [from, to).
func (r *MenuViewRepo) Count(ctx context.Context, restaurantID string, from, to time.Time) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM menu_views
	WHERE restaurant_id = $1
	  AND viewed_at >= $2 AND viewed_at < $3`
	var n int
	if err := r.pool.QueryRow(ctx, query, restaurantID, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.Count: %w", err)
	}
	return n, nil
}

// CountByDay agrupa por día UTC; los días sin vistas no aparecen.
func (r *MenuViewRepo) CountByDay(ctx context.Context, restaurantID string, from, to time.Time) ([]repository.DailyViews, error) {
	const query = `
	SELECT
	    date_trunc('day', viewed_at AT TIME ZONE 'UTC') AS day,
	    COUNT(*)                                        AS views
	FROM menu_views
	WHERE restaurant_id = $1
	  AND viewed_at >= $2 AND viewed_at < $3
	GROUP BY day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountByDay: %w", err)
	}
	defer rows.Close()

	var results []repository.DailyViews
	for rows.Next() {
		var row repository.DailyViews
		if err := rows.Scan(&row.Day, &row.Views); err != nil {
			return nil, fmt.Errorf("analytics.CountByDay scan: %w", err)
		}
		row.Day = time.Date(row.Day.Year(), row.Day.Month(), row.Day.Day(), 0, 0, 0, 0, time.UTC)
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountByLanguage agrupa por idioma; vacío se reporta como "unknown".
func (r *MenuViewRepo) CountByLanguage(ctx context.Context, restaurantID string, from, to time.Time) ([]repository.LanguageViews, error) {
	const query = `
	SELECT
	    COALESCE(NULLIF(language, ''), 'unknown') AS lang,
	    COUNT(*)                                  AS views
	FROM menu_views
	WHERE restaurant_id = $1
	  AND viewed_at >= $2 AND viewed_at < $3
	GROUP BY lang
	ORDER BY views DESC, lang`

	rows, err := r.pool.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountByLanguage: %w", err)
	}
	defer rows.Close()

	var results []repository.LanguageViews
	for rows.Next() {
		var row repository.LanguageViews
		if err := rows.Scan(&row.Language, &row.Views); err != nil {
			return nil, fmt.Errorf("analytics.CountByLanguage scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// List devuelve las vistas crudas del rango, para la exportación CSV.
func (r *MenuViewRepo) List(ctx context.Context, restaurantID string, from, to time.Time) ([]*entity.MenuView, error) {
	const query = `
	SELECT id, restaurant_id, viewed_at, user_agent, language
	FROM menu_views
	WHERE restaurant_id = $1
	  AND viewed_at >= $2 AND viewed_at < $3
	ORDER BY viewed_at`

	rows, err := r.pool.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.List: %w", err)
	}
	defer rows.Close()

	var results []*entity.MenuView
	for rows.Next() {
		var v entity.MenuView
		if err := rows.Scan(&v.ID, &v.RestaurantID, &v.ViewedAt, &v.UserAgent, &v.Language); err != nil {
			return nil, fmt.Errorf("analytics.List scan: %w", err)
		}
		results = append(results, &v)
	}
	return results, rows.Err()
}
