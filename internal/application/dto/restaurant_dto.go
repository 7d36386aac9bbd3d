package dto

import "time"

// RestaurantResponse perfil del restaurante con su estado de suscripción reconciliado.
type RestaurantResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	LogoURL     string    `json:"logo_url"`
	CoverURL    string    `json:"cover_url"`
	Currency    string    `json:"currency"`
	ThemeColor  string    `json:"theme_color"`
	IsActive    bool      `json:"is_active"`
	MenuURL     string    `json:"menu_url"`
	CreatedAt   time.Time `json:"created_at"`

	Subscription SubscriptionStatusResponse `json:"subscription"`
}

// UpdateRestaurantRequest edición parcial del perfil; los campos nil no cambian.
type UpdateRestaurantRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=160"`
	Slug        *string `json:"slug" validate:"omitempty,max=80"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Currency    *string `json:"currency" validate:"omitempty,len=3"`
	ThemeColor  *string `json:"theme_color"`
}

// ImageUploadResponse URL pública de una imagen subida.
type ImageUploadResponse struct {
	URL string `json:"url"`
}

// RestaurantListRequest filtros del listado del super-admin.
type RestaurantListRequest struct {
	PageRequest
	Status string `query:"status"`
	Plan   string `query:"plan"`
	Search string `query:"q"`
}

// RestaurantListResponse página de restaurantes.
type RestaurantListResponse struct {
	Items []RestaurantResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// SetActiveRequest activación manual por el super-admin.
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// PlatformStatsResponse resumen global para el panel del super-admin.
type PlatformStatsResponse struct {
	TotalRestaurants int            `json:"total_restaurants"`
	ByStatus         map[string]int `json:"by_status"`
}
