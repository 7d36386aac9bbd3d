package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
	"github.com/jhoicas/MenuQR-api/internal/domain"
)

// AIHandler genera descripciones de productos asistidas por IA.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// GenerateDescription godoc
// @Summary      Redactar descripción de producto con IA
// @Description  Devuelve una descripción breve para la carta y etiquetas sugeridas.
//               Timeout interno de 10 s.
// @Tags         dashboard-ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AIDescriptionRequest  true  "product_name (obligatorio), category, ingredients, language"
// @Success      200   {object}  dto.AIDescriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/dashboard/ai/description [post]
func (h *AIHandler) GenerateDescription(c *fiber.Ctx) error {
	var req dto.AIDescriptionRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	result, err := h.uc.GenerateDescription(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return writeError(c, err)
		case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
			return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
				Code: "TIMEOUT", Message: "el servicio de IA tardó demasiado; intenta de nuevo",
			})
		case strings.Contains(err.Error(), "_API_KEY"):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "AI_UNAVAILABLE", Message: "el servicio de IA no está configurado",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "AI_FAILED", Message: "el servicio de IA no respondió correctamente",
		})
	}
	return c.JSON(result)
}

// isTimeout detecta timeouts que el proveedor reporta solo en el mensaje.
func isTimeout(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "cancelación")
}
