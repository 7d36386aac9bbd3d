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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, restaurant_id, category_id, name, description, price, image_url,
	is_available, is_featured, position, tags, created_at, updated_at`

// ProductRepo productos de la carta sobre PostgreSQL.
type ProductRepo struct {
	db Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db Querier) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.RestaurantID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL,
		p.IsAvailable, p.IsFeatured, p.Position, tagsOrEmpty(p.Tags), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del restaurante.
func (r *ProductRepo) GetByID(ctx context.Context, restaurantID, id string) (*entity.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListByRestaurant lista productos, opcionalmente por categoría y solo disponibles.
func (r *ProductRepo) ListByRestaurant(ctx context.Context, restaurantID, categoryID string, onlyAvailable bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE restaurant_id = $1`
	args := []any{restaurantID}
	if categoryID != "" {
		args = append(args, categoryID)
		query += ` AND category_id = $2`
	}
	if onlyAvailable {
		query += ` AND is_available`
	}
	query += ` ORDER BY position, name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza todos los campos editables.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $3, name = $4, description = $5, price = $6, image_url = $7,
		    is_available = $8, is_featured = $9, position = $10, tags = $11, updated_at = $12
		WHERE restaurant_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query,
		p.RestaurantID, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL,
		p.IsAvailable, p.IsFeatured, p.Position, tagsOrEmpty(p.Tags), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto (las variantes caen en cascada).
func (r *ProductRepo) Delete(ctx context.Context, restaurantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.RestaurantID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.IsAvailable, &p.IsFeatured, &p.Position, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
