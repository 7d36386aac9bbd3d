package subscription

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

var _ ExpiryNotifier = (*MailExpiryNotifier)(nil)

// MailExpiryNotifier escribe al propietario de cada restaurante vencido. Los errores solo se registran.
type MailExpiryNotifier struct {
	restaurants repository.RestaurantRepository
	users       repository.UserRepository
	mailer      ports.Mailer
	baseURL     string
	log         zerolog.Logger
}

func NewMailExpiryNotifier(
	restaurants repository.RestaurantRepository,
	users repository.UserRepository,
	mailer ports.Mailer,
	baseURL string,
	log zerolog.Logger,
) *MailExpiryNotifier {
	return &MailExpiryNotifier{restaurants: restaurants, users: users, mailer: mailer, baseURL: baseURL, log: log}
}

func (n *MailExpiryNotifier) NotifyExpired(ctx context.Context, restaurantIDs []string) {
	for _, id := range restaurantIDs {
		if err := n.notifyOne(ctx, id); err != nil {
			n.log.Warn().Err(err).Str("restaurant_id", id).Msg("expiry notice not sent")
		}
	}
}

func (n *MailExpiryNotifier) notifyOne(ctx context.Context, restaurantID string) error {
	r, err := n.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrRestaurantNotFound
	}
	owner, err := n.users.FindOwnerByRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	if owner == nil {
		return domain.ErrOwnerNotFound
	}
	return n.mailer.Send(ctx, ports.Email{
		To:      owner.Email,
		Subject: fmt.Sprintf("Tu suscripción de %s ha vencido", r.Name),
		TextBody: fmt.Sprintf(
			"Hola %s,\n\nLa suscripción de %s venció y el menú público dejó de estar visible.\n"+
				"Puedes renovarla desde %s/dashboard.\n",
			owner.Name, r.Name, n.baseURL),
	})
}
