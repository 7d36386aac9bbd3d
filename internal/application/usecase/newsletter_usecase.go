package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

// NewsletterUseCase suscripción pública al boletín de la plataforma.
type NewsletterUseCase struct {
	repo   repository.NewsletterRepository
	mailer ports.Mailer
	log    zerolog.Logger
}

// NewNewsletterUseCase construye el caso de uso. mailer puede ser nil.
func NewNewsletterUseCase(repo repository.NewsletterRepository, mailer ports.Mailer, log zerolog.Logger) *NewsletterUseCase {
	return &NewsletterUseCase{repo: repo, mailer: mailer, log: log}
}

// Subscribe es idempotente: un correo ya activo devuelve created=false y no reenvía confirmación.
func (uc *NewsletterUseCase) Subscribe(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false, invalid("email inválido")
	}
	created, err := uc.repo.Upsert(ctx, &entity.NewsletterSubscriber{
		ID:        uuid.New().String(),
		Email:     email,
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return false, err
	}
	if created && uc.mailer != nil {
		err := uc.mailer.Send(ctx, ports.Email{
			To:       email,
			Subject:  "Suscripción confirmada",
			TextBody: "Gracias por suscribirte al boletín de MenuQR. Te escribiremos con novedades.\n",
		})
		if err != nil {
			uc.log.Warn().Err(err).Msg("newsletter confirmation not sent")
		}
	}
	return created, nil
}

// List página de suscriptores para el super-admin.
func (uc *NewsletterUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.NewsletterSubscriberResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NewsletterSubscriberResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewsletterSubscriberResponse{
			ID:        s.ID,
			Email:     s.Email,
			IsActive:  s.IsActive,
			CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}
