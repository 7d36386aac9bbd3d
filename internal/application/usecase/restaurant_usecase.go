package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/menu"
	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
	"github.com/jhoicas/MenuQR-api/pkg/slug"
)

// Tipos de imagen del perfil del restaurante.
const (
	ImageLogo  = "logo"
	ImageCover = "cover"
)

// RestaurantUseCase perfil del restaurante visto desde su panel.
type RestaurantUseCase struct {
	repo    repository.RestaurantRepository
	storage ports.FileStorage
	baseURL string
	now     func() time.Time
}

// NewRestaurantUseCase construye el caso de uso con el puerto de persistencia.
func NewRestaurantUseCase(repo repository.RestaurantRepository, storage ports.FileStorage, baseURL string) *RestaurantUseCase {
	return &RestaurantUseCase{repo: repo, storage: storage, baseURL: baseURL, now: time.Now}
}

// Get devuelve el perfil con la suscripción reconciliada.
func (uc *RestaurantUseCase) Get(ctx context.Context, id string) (*dto.RestaurantResponse, error) {
	r, err := loadRestaurant(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	out := ToRestaurantResponse(r, uc.baseURL, uc.now())
	return &out, nil
}

// Update aplica una edición parcial. Cambiar el slug exige que el nuevo esté libre (ErrSlugTaken).
func (uc *RestaurantUseCase) Update(ctx context.Context, id string, in dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error) {
	r, err := loadRestaurant(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name no puede ser vacío")
		}
		r.Name = name
	}
	if in.Slug != nil {
		s := slug.Make(*in.Slug)
		if s == "" {
			return nil, invalid("slug inválido")
		}
		if s != r.Slug {
			taken, err := uc.repo.SlugExists(ctx, s)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrSlugTaken
			}
			r.Slug = s
		}
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Address != nil {
		r.Address = *in.Address
	}
	if in.Phone != nil {
		r.Phone = *in.Phone
	}
	if in.Email != nil {
		r.Email = strings.TrimSpace(*in.Email)
	}
	if in.Currency != nil {
		r.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.ThemeColor != nil {
		if !validHexColor(*in.ThemeColor) {
			return nil, invalid("theme_color debe ser #rrggbb")
		}
		r.ThemeColor = strings.ToLower(*in.ThemeColor)
	}
	r.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	out := ToRestaurantResponse(r, uc.baseURL, uc.now())
	return &out, nil
}

// UploadImage guarda el logo o la portada y actualiza el perfil.
func (uc *RestaurantUseCase) UploadImage(ctx context.Context, id, kind string, img ImageUpload) (*dto.ImageUploadResponse, error) {
	if kind != ImageLogo && kind != ImageCover {
		return nil, invalid("tipo de imagen desconocido")
	}
	r, err := loadRestaurant(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	url, err := saveImage(ctx, uc.storage, r.ID, kind, img)
	if err != nil {
		return nil, err
	}
	if kind == ImageLogo {
		r.LogoURL = url
	} else {
		r.CoverURL = url
	}
	r.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return &dto.ImageUploadResponse{URL: url}, nil
}

// ToRestaurantResponse arma la vista del restaurante con la URL pública del menú.
func ToRestaurantResponse(r *entity.Restaurant, baseURL string, now time.Time) dto.RestaurantResponse {
	return dto.RestaurantResponse{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		Description:  r.Description,
		Address:      r.Address,
		Phone:        r.Phone,
		Email:        r.Email,
		LogoURL:      r.LogoURL,
		CoverURL:     r.CoverURL,
		Currency:     r.Currency,
		ThemeColor:   r.ThemeColor,
		IsActive:     r.IsActive,
		MenuURL:      menu.MenuURL(baseURL, r.Slug),
		CreatedAt:    r.CreatedAt,
		Subscription: subscription.ToStatusResponse(r, now),
	}
}

func loadRestaurant(ctx context.Context, repo repository.RestaurantRepository, id string) (*entity.Restaurant, error) {
	r, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRestaurantNotFound
	}
	return r, nil
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range strings.ToLower(s[1:]) {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
