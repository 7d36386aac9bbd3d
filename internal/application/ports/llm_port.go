package ports

import (
	"context"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
)

// LLMService puerto de salida hacia el proveedor de IA (Anthropic, Gemini, mock).
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type LLMService interface {
	// GenerateProductDescription redacta una descripción breve y apetitosa para la carta.
	GenerateProductDescription(ctx context.Context, req dto.AIDescriptionRequest) (*dto.AIDescriptionResponse, error)
}
