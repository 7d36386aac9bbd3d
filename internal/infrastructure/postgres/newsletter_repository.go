package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

var _ repository.NewsletterRepository = (*NewsletterRepo)(nil)

// NewsletterRepo suscriptores del boletín.
type NewsletterRepo struct {
	pool *pgxpool.Pool
}

func NewNewsletterRepository(pool *pgxpool.Pool) *NewsletterRepo {
	return &NewsletterRepo{pool: pool}
}

// Upsert inserta el correo o lo reactiva. created indica si hubo alta o reactivación.
func (r *NewsletterRepo) Upsert(ctx context.Context, s *entity.NewsletterSubscriber) (bool, error) {
	const query = `
	INSERT INTO newsletter_subscribers (id, email, is_active, created_at)
	VALUES ($1, lower($2), TRUE, $3)
	ON CONFLICT (email) DO UPDATE SET is_active = TRUE
	WHERE newsletter_subscribers.is_active = FALSE
	RETURNING id`
	var id string
	err := r.pool.QueryRow(ctx, query, s.ID, s.Email, s.CreatedAt).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("upsert newsletter subscriber: %w", err)
	}
	s.ID = id
	return true, nil
}

func (r *NewsletterRepo) List(ctx context.Context, limit, offset int) ([]*entity.NewsletterSubscriber, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, is_active, created_at FROM newsletter_subscribers
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list newsletter subscribers: %w", err)
	}
	defer rows.Close()
	var list []*entity.NewsletterSubscriber
	for rows.Next() {
		var s entity.NewsletterSubscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan newsletter subscriber: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
