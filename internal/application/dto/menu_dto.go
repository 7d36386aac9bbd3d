package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description"`
	Position    *int   `json:"position"`
	IsActive    *bool  `json:"is_active"`
}

// ReorderRequest IDs en el orden deseado.
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// CategoryResponse salida de categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductRequest alta o edición de producto.
type ProductRequest struct {
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Name        string          `json:"name" validate:"required,max=160"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"is_available"`
	IsFeatured  bool            `json:"is_featured"`
	Position    int             `json:"position"`
	Tags        []string        `json:"tags"`
}

// ProductResponse salida de producto con sus variantes.
type ProductResponse struct {
	ID          string            `json:"id"`
	CategoryID  string            `json:"category_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	ImageURL    string            `json:"image_url"`
	IsAvailable bool              `json:"is_available"`
	IsFeatured  bool              `json:"is_featured"`
	Position    int               `json:"position"`
	Tags        []string          `json:"tags"`
	Variants    []VariantResponse `json:"variants,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// VariantRequest alta o edición de variante.
type VariantRequest struct {
	Name     string          `json:"name" validate:"required,max=120"`
	Price    decimal.Decimal `json:"price"`
	Position int             `json:"position"`
}

// VariantResponse salida de variante.
type VariantResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Position  int             `json:"position"`
}

// PublicMenuResponse carta pública de un restaurante.
type PublicMenuResponse struct {
	Restaurant PublicRestaurant `json:"restaurant"`
	Categories []PublicCategory `json:"categories"`
}

// PublicRestaurant datos visibles para el comensal.
type PublicRestaurant struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	LogoURL     string `json:"logo_url"`
	CoverURL    string `json:"cover_url"`
	Currency    string `json:"currency"`
	ThemeColor  string `json:"theme_color"`
}

// PublicCategory categoría con sus productos disponibles.
type PublicCategory struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Products    []PublicProduct `json:"products"`
}

// PublicProduct producto visible para el comensal.
type PublicProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	IsFeatured  bool            `json:"is_featured"`
	Tags        []string        `json:"tags"`
	Variants    []PublicVariant `json:"variants,omitempty"`
}

// PublicVariant variante visible para el comensal.
type PublicVariant struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Viewer datos del comensal para el registro de la vista.
type Viewer struct {
	UserAgent string
	Language  string
}
