package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MenuQR-api/internal/application/auth"
	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/impersonation"
	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
)

// AdminHandler área del SUPER_ADMIN: restaurantes, planes, suplantación, boletín y barrido manual.
type AdminHandler struct {
	admin         *usecase.AdminUseCase
	newsletter    *usecase.NewsletterUseCase
	sweeper       *subscription.Sweeper
	impersonation *impersonation.Manager
	auth          *auth.AuthUseCase
	session       SessionConfig
}

// AdminDeps dependencias del handler de super-admin.
type AdminDeps struct {
	Admin         *usecase.AdminUseCase
	Newsletter    *usecase.NewsletterUseCase
	Sweeper       *subscription.Sweeper
	Impersonation *impersonation.Manager
	Auth          *auth.AuthUseCase
	Session       SessionConfig
}

func NewAdminHandler(d AdminDeps) *AdminHandler {
	return &AdminHandler{
		admin:         d.Admin,
		newsletter:    d.Newsletter,
		sweeper:       d.Sweeper,
		impersonation: d.Impersonation,
		auth:          d.Auth,
		session:       d.Session,
	}
}

// ListRestaurants godoc
// @Summary      Listar restaurantes
// @Tags         super-admin
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "ACTIVE | EXPIRED | CANCELLED"
// @Param        plan    query  string  false  "TRIAL | MONTHLY | YEARLY"
// @Param        q       query  string  false  "Búsqueda por nombre o slug"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.RestaurantListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/super-admin/restaurants [get]
func (h *AdminHandler) ListRestaurants(c *fiber.Ctx) error {
	var req dto.RestaurantListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.admin.List(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetRestaurant godoc
// @Summary      Detalle de un restaurante
// @Tags         super-admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del restaurante"
// @Success      200  {object}  dto.RestaurantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/super-admin/restaurants/{id} [get]
func (h *AdminHandler) GetRestaurant(c *fiber.Ctx) error {
	out, err := h.admin.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o suspender un restaurante
// @Tags         super-admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del restaurante"
// @Param        body  body  dto.SetActiveRequest  true  "is_active"
// @Success      200   {object}  dto.RestaurantResponse
// @Router       /api/super-admin/restaurants/{id}/active [put]
func (h *AdminHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetActiveRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.admin.SetActive(c.UserContext(), c.Params("id"), in.IsActive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangePlan godoc
// @Summary      Asignar plan manualmente
// @Description  Abre un nuevo período desde start_date (o ahora) y lo registra en el historial.
// @Tags         super-admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del restaurante"
// @Param        body  body  dto.ChangePlanRequest  true  "plan, start_date, amount, auto_renew"
// @Success      200   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/super-admin/restaurants/{id}/plan [put]
func (h *AdminHandler) ChangePlan(c *fiber.Ctx) error {
	var in dto.ChangePlanRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.admin.ChangePlan(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Totales de la plataforma
// @Tags         super-admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PlatformStatsResponse
// @Router       /api/super-admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	out, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Newsletter godoc
// @Summary      Suscriptores del boletín
// @Tags         super-admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.NewsletterSubscriberResponse
// @Router       /api/super-admin/newsletter [get]
func (h *AdminHandler) Newsletter(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.newsletter.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SweepExpire godoc
// @Summary      Ejecutar la pasada de vencimiento
// @Tags         super-admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExpireSweepResponse
// @Router       /api/super-admin/sweep/expire [post]
func (h *AdminHandler) SweepExpire(c *fiber.Ctx) error {
	n, err := h.sweeper.ExpireSweep(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ExpireSweepResponse{Updated: n})
}

// SweepRenew godoc
// @Summary      Ejecutar la pasada de renovación automática
// @Tags         super-admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RenewSweepResponse
// @Router       /api/super-admin/sweep/renew [post]
func (h *AdminHandler) SweepRenew(c *fiber.Ctx) error {
	n, err := h.sweeper.RenewSweep(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RenewSweepResponse{Renewed: n})
}

// BeginImpersonation godoc
// @Summary      Suplantar al propietario de un restaurante
// @Description  Devuelve un token nuevo con la suplantación y actualiza la cookie de sesión.
// @Tags         super-admin
// @Security     Bearer
// @Produce      json
// @Param        restaurantId  path  string  true  "ID del restaurante"
// @Success      200  {object}  dto.ImpersonationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/super-admin/impersonate/{restaurantId} [post]
func (h *AdminHandler) BeginImpersonation(c *fiber.Ctx) error {
	caller := GetClaims(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	desc, next, err := h.impersonation.Begin(c.UserContext(), *caller, c.Params("restaurantId"))
	if err != nil {
		return writeError(c, err)
	}
	token, err := h.auth.IssueToken(next)
	if err != nil {
		return writeError(c, err)
	}
	setSessionCookie(c, h.session, token)
	return c.JSON(dto.ImpersonationResponse{Token: token, Impersonation: auth.ToImpersonationInfo(desc)})
}

// EndImpersonation godoc
// @Summary      Terminar la suplantación
// @Description  Restaura la identidad original. Sin suplantación activa devuelve la sesión sin cambios.
// @Tags         super-admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ImpersonationResponse
// @Router       /api/super-admin/impersonate [delete]
func (h *AdminHandler) EndImpersonation(c *fiber.Ctx) error {
	caller := GetClaims(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	token, err := h.auth.IssueToken(h.impersonation.End(*caller))
	if err != nil {
		return writeError(c, err)
	}
	setSessionCookie(c, h.session, token)
	return c.JSON(dto.ImpersonationResponse{Token: token})
}
