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

var _ repository.VariantRepository = (*VariantRepo)(nil)

const variantColumns = `id, product_id, restaurant_id, name, price, position, created_at, updated_at`

// VariantRepo variantes de producto sobre PostgreSQL.
type VariantRepo struct {
	db Querier
}

func NewVariantRepository(db Querier) *VariantRepo {
	return &VariantRepo{db: db}
}

func (r *VariantRepo) Create(ctx context.Context, v *entity.Variant) error {
	query := `INSERT INTO product_variants (` + variantColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, v.ID, v.ProductID, v.RestaurantID, v.Name, v.Price, v.Position, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

func (r *VariantRepo) GetByID(ctx context.Context, restaurantID, id string) (*entity.Variant, error) {
	var v entity.Variant
	err := r.db.QueryRow(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE restaurant_id = $1 AND id = $2`, restaurantID, id).
		Scan(&v.ID, &v.ProductID, &v.RestaurantID, &v.Name, &v.Price, &v.Position, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

func (r *VariantRepo) ListByProduct(ctx context.Context, restaurantID, productID string) ([]*entity.Variant, error) {
	return r.list(ctx, `SELECT `+variantColumns+` FROM product_variants
		WHERE restaurant_id = $1 AND product_id = $2 ORDER BY position, name`, restaurantID, productID)
}

// ListByRestaurant trae todas las variantes del restaurante de una vez (render del menú).
func (r *VariantRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Variant, error) {
	return r.list(ctx, `SELECT `+variantColumns+` FROM product_variants
		WHERE restaurant_id = $1 ORDER BY product_id, position, name`, restaurantID)
}

func (r *VariantRepo) Update(ctx context.Context, v *entity.Variant) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE product_variants SET name = $3, price = $4, position = $5, updated_at = $6
		WHERE restaurant_id = $1 AND id = $2`,
		v.RestaurantID, v.ID, v.Name, v.Price, v.Position, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VariantRepo) Delete(ctx context.Context, restaurantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_variants WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VariantRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Variant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.RestaurantID, &v.Name, &v.Price, &v.Position, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
