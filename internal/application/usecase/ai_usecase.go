package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/ports"
)

const aiTimeout = 10 * time.Second

// AIUseCase orquesta la redacción asistida de descripciones de platos.
// Cada llamada al LLM tiene un timeout de 10 segundos.
type AIUseCase struct {
	llm ports.LLMService
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(llm ports.LLMService) *AIUseCase {
	return &AIUseCase{llm: llm}
}

// GenerateDescription valida la entrada y delega al servicio de LLM.
func (uc *AIUseCase) GenerateDescription(ctx context.Context, req dto.AIDescriptionRequest) (*dto.AIDescriptionResponse, error) {
	req.ProductName = strings.TrimSpace(req.ProductName)
	if req.ProductName == "" {
		return nil, invalid("product_name es obligatorio")
	}
	switch req.Language {
	case "":
		req.Language = "es"
	case "es", "en":
	default:
		return nil, invalid("language debe ser es o en")
	}

	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	result, err := uc.llm.GenerateProductDescription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("descripción IA: %w", err)
	}
	return result, nil
}
