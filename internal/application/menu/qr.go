package menu

import (
	"context"

	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

const (
	defaultQRSize = 512
	minQRSize     = 128
	maxQRSize     = 2048
)

// QRUseCase genera el QR (PNG) y el cartel imprimible (PDF) que apuntan al menú público.
type QRUseCase struct {
	restaurants repository.RestaurantRepository
	encoder     ports.QREncoder
	poster      ports.PosterGenerator
	baseURL     string
}

func NewQRUseCase(restaurants repository.RestaurantRepository, encoder ports.QREncoder, poster ports.PosterGenerator, baseURL string) *QRUseCase {
	return &QRUseCase{restaurants: restaurants, encoder: encoder, poster: poster, baseURL: baseURL}
}

// MenuURL URL pública del menú de un slug.
func MenuURL(baseURL, slug string) string {
	return baseURL + "/menu/" + slug
}

// PNG devuelve el QR del menú; size fuera de [128, 2048] usa 512.
func (uc *QRUseCase) PNG(ctx context.Context, restaurantID string, size int) ([]byte, error) {
	r, err := uc.load(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if size < minQRSize || size > maxQRSize {
		size = defaultQRSize
	}
	return uc.encoder.PNG(MenuURL(uc.baseURL, r.Slug), size)
}

// PosterPDF devuelve un cartel A4 con el nombre del restaurante y el QR.
func (uc *QRUseCase) PosterPDF(ctx context.Context, restaurantID string) ([]byte, string, error) {
	r, err := uc.load(ctx, restaurantID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.poster.MenuPoster(r.Name, MenuURL(uc.baseURL, r.Slug))
	if err != nil {
		return nil, "", err
	}
	return pdf, r.Slug, nil
}

func (uc *QRUseCase) load(ctx context.Context, restaurantID string) (*entity.Restaurant, error) {
	r, err := uc.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRestaurantNotFound
	}
	return r, nil
}
