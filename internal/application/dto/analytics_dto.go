package dto

// ── Query parameters ──────────────────────────────────────────────────────────

// AnalyticsRequest parámetros para GET /api/dashboard/analytics.
type AnalyticsRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto hace 30 días
	EndDate   string `query:"end_date"`   // YYYY-MM-DD inclusive; por defecto hoy
}

// ── Respuestas ────────────────────────────────────────────────────────────────

// DailyViewsDTO vistas en un día (YYYY-MM-DD, UTC).
type DailyViewsDTO struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// LanguageViewsDTO vistas por idioma del navegador ("es", "en", "unknown").
type LanguageViewsDTO struct {
	Language string `json:"language"`
	Views    int    `json:"views"`
	Pct      string `json:"pct"` // participación sobre el total, 1 decimal
}

// AnalyticsSummaryResponse resumen de vistas del menú en el período.
type AnalyticsSummaryResponse struct {
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	TotalViews int                `json:"total_views"`
	DailyAvg   string             `json:"daily_avg"`
	ByDay      []DailyViewsDTO    `json:"by_day"` // incluye días con 0 vistas
	ByLanguage []LanguageViewsDTO `json:"by_language"`
}

// ── IA ────────────────────────────────────────────────────────────────────────

// AIDescriptionRequest entrada para POST /api/dashboard/ai/description.
type AIDescriptionRequest struct {
	ProductName string   `json:"product_name" validate:"required"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
	Language    string   `json:"language"` // es | en; por defecto es
	Tone        string   `json:"tone"`     // casual | elegante; opcional
}

// AIDescriptionResponse descripción generada.
type AIDescriptionResponse struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Provider    string   `json:"provider"`
}

// ── Boletín ───────────────────────────────────────────────────────────────────

// NewsletterRequest suscripción pública al boletín.
type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewsletterSubscriberResponse suscriptor listado por el super-admin.
type NewsletterSubscriberResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}
