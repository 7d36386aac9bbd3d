package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

const restaurantColumns = `id, name, slug, description, address, phone, email, logo_url, cover_url, currency, theme_color,
	is_active, subscription_plan, subscription_status, subscription_start_date, subscription_end_date, auto_renew,
	created_at, updated_at`

// RestaurantRepo implementación del puerto RestaurantRepository sobre PostgreSQL.
type RestaurantRepo struct {
	db Querier
}

// NewRestaurantRepository acepta el pool o una transacción.
func NewRestaurantRepository(db Querier) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

// Create persiste un nuevo restaurante. Un slug repetido devuelve domain.ErrSlugTaken.
func (r *RestaurantRepo) Create(ctx context.Context, rs *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db.Exec(ctx, query,
		rs.ID, rs.Name, rs.Slug, rs.Description, rs.Address, rs.Phone, rs.Email, rs.LogoURL, rs.CoverURL,
		rs.Currency, rs.ThemeColor, rs.IsActive, rs.SubscriptionPlan, rs.SubscriptionStatus,
		rs.SubscriptionStartDate, rs.SubscriptionEndDate, rs.AutoRenew, rs.CreatedAt, rs.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// GetByID obtiene un restaurante por ID.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
}

// GetBySlug obtiene un restaurante por su slug público.
func (r *RestaurantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Restaurant, error) {
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE slug = $1`, slug)
}

// SlugExists indica si el slug ya está tomado.
func (r *RestaurantRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM restaurants WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// Update persiste los campos de perfil.
func (r *RestaurantRepo) Update(ctx context.Context, rs *entity.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, slug = $3, description = $4, address = $5, phone = $6, email = $7,
		    logo_url = $8, cover_url = $9, currency = $10, theme_color = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		rs.ID, rs.Name, rs.Slug, rs.Description, rs.Address, rs.Phone, rs.Email,
		rs.LogoURL, rs.CoverURL, rs.Currency, rs.ThemeColor, rs.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

// SetActive activa o desactiva la visibilidad pública.
func (r *RestaurantRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE restaurants SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set restaurant active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

// SetAutoRenew actualiza únicamente la bandera de auto-renovación.
func (r *RestaurantRepo) SetAutoRenew(ctx context.Context, id string, autoRenew bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE restaurants SET auto_renew = $2, updated_at = NOW() WHERE id = $1`, id, autoRenew)
	if err != nil {
		return fmt.Errorf("set auto renew: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

// UpdateSubscription persiste plan, estado, fechas, auto_renew e is_active.
func (r *RestaurantRepo) UpdateSubscription(ctx context.Context, rs *entity.Restaurant) error {
	query := `
		UPDATE restaurants
		SET subscription_plan = $2, subscription_status = $3, subscription_start_date = $4,
		    subscription_end_date = $5, auto_renew = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		rs.ID, rs.SubscriptionPlan, rs.SubscriptionStatus, rs.SubscriptionStartDate,
		rs.SubscriptionEndDate, rs.AutoRenew, rs.IsActive, rs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

// List devuelve una página de restaurantes y el total que cumple el filtro.
func (r *RestaurantRepo) List(ctx context.Context, f repository.RestaurantFilter) ([]*entity.Restaurant, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("subscription_status = $%d", len(args)))
	}
	if f.Plan != "" {
		args = append(args, f.Plan)
		conds = append(conds, fmt.Sprintf("subscription_plan = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR slug ILIKE $%d)", len(args), len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count restaurants: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM restaurants%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		restaurantColumns, where, len(args)-1, len(args))
	list, err := r.getMany(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// CountBySubscriptionStatus agrupa los restaurantes por estado guardado.
func (r *RestaurantRepo) CountBySubscriptionStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT subscription_status, COUNT(*) FROM restaurants GROUP BY subscription_status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// ExpireOverdue actualiza en bloque los vencidos y devuelve sus IDs.
func (r *RestaurantRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		UPDATE restaurants
		SET subscription_status = 'EXPIRED', is_active = FALSE, updated_at = $1
		WHERE subscription_end_date < $1 AND subscription_status = 'ACTIVE'
		RETURNING id`
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("expire overdue: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("expire overdue: %w", err)
	}
	return ids, nil
}

// FindRenewable lista candidatos a auto-renovación ordenados por fecha de fin.
func (r *RestaurantRepo) FindRenewable(ctx context.Context, from, to time.Time) ([]*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE auto_renew = TRUE
		  AND subscription_status = 'ACTIVE'
		  AND subscription_plan = 'MONTHLY'
		  AND subscription_end_date >= $1 AND subscription_end_date <= $2
		ORDER BY subscription_end_date`
	return r.getMany(ctx, query, from, to)
}

// RenewIfUnchanged es una actualización condicional: solo aplica si nadie renovó antes.
func (r *RestaurantRepo) RenewIfUnchanged(ctx context.Context, id string, oldEnd, newEnd time.Time) (bool, error) {
	query := `
		UPDATE restaurants
		SET subscription_end_date = $3, updated_at = NOW()
		WHERE id = $1 AND subscription_end_date = $2 AND subscription_status = 'ACTIVE'`
	tag, err := r.db.Exec(ctx, query, id, oldEnd, newEnd)
	if err != nil {
		return false, fmt.Errorf("renew restaurant: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RestaurantRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Restaurant, error) {
	rs, err := scanRestaurant(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return rs, nil
}

func (r *RestaurantRepo) getMany(ctx context.Context, query string, args ...any) ([]*entity.Restaurant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Restaurant
	for rows.Next() {
		rs, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		list = append(list, rs)
	}
	return list, rows.Err()
}

func scanRestaurant(row pgx.Row) (*entity.Restaurant, error) {
	var rs entity.Restaurant
	err := row.Scan(
		&rs.ID, &rs.Name, &rs.Slug, &rs.Description, &rs.Address, &rs.Phone, &rs.Email,
		&rs.LogoURL, &rs.CoverURL, &rs.Currency, &rs.ThemeColor, &rs.IsActive,
		&rs.SubscriptionPlan, &rs.SubscriptionStatus, &rs.SubscriptionStartDate, &rs.SubscriptionEndDate,
		&rs.AutoRenew, &rs.CreatedAt, &rs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rs, nil
}
