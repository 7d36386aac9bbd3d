package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, restaurant_id, name, description, position, is_active, created_at, updated_at`

// CategoryRepo categorías de la carta sobre PostgreSQL.
type CategoryRepo struct {
	db Querier
}

func NewCategoryRepository(db Querier) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, c.ID, c.RestaurantID, c.Name, c.Description, c.Position, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, restaurantID, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE restaurant_id = $1 AND id = $2`, restaurantID, id).
		Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description, &c.Position, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) ListByRestaurant(ctx context.Context, restaurantID string, onlyActive bool) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE restaurant_id = $1`
	if onlyActive {
		query += ` AND is_active`
	}
	query += ` ORDER BY position, name`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description, &c.Position, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET name = $3, description = $4, position = $5, is_active = $6, updated_at = $7
		WHERE restaurant_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, c.RestaurantID, c.ID, c.Name, c.Description, c.Position, c.IsActive, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, restaurantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Reorder usa un único UPDATE con unnest para que el orden quede consistente.
func (r *CategoryRepo) Reorder(ctx context.Context, restaurantID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `
		UPDATE categories c SET position = o.pos - 1, updated_at = NOW()
		FROM unnest($2::uuid[]) WITH ORDINALITY AS o(id, pos)
		WHERE c.restaurant_id = $1 AND c.id = o.id`
	tag, err := r.db.Exec(ctx, query, restaurantID, ids)
	if err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return domain.ErrInvalidInput
	}
	return nil
}
