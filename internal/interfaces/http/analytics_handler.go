package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
)

// AnalyticsHandler maneja las estadísticas de vistas del menú.
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de vistas del menú
// @Description  Total, promedio diario, vistas por día (con ceros) y por idioma del navegador.
// @Tags         dashboard-analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD). Default: hace 30 días."
// @Param        end_date    query  string  false  "Fin inclusive (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.AnalyticsSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/analytics [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	var req dto.AnalyticsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	report, err := h.uc.Summary(c.UserContext(), GetRestaurantID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// ExportCSV godoc
// @Summary      Exportar vistas del menú en CSV
// @Tags         dashboard-analytics
// @Security     Bearer
// @Produce      text/csv
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin inclusive (YYYY-MM-DD)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/analytics/export.csv [get]
func (h *AnalyticsHandler) ExportCSV(c *fiber.Ctx) error {
	var req dto.AnalyticsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	body, err := h.uc.ExportCSV(c.UserContext(), GetRestaurantID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("menu-views-%s.csv", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(body)
}
