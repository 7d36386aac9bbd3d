package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/menu"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/pkg/jwt"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// pageData modelo común de las plantillas.
type pageData struct {
	Title      string
	ThemeColor string
	Message    string
	Claims     *jwt.Claims
	Menu       *dto.PublicMenuResponse
}

// PageHandler páginas HTML. El acceso lo decide AccessGate antes de llegar aquí.
type PageHandler struct {
	menu *menu.PublicMenuUseCase
	log  zerolog.Logger
}

func NewPageHandler(menuUC *menu.PublicMenuUseCase, log zerolog.Logger) *PageHandler {
	return &PageHandler{menu: menuUC, log: log}
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "home.html", pageData{Title: "MenuQR"})
}

func (h *PageHandler) Login(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "login.html", pageData{Title: "Ingresar · MenuQR"})
}

func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "dashboard.html", pageData{Title: "Panel · MenuQR", Claims: GetClaims(c)})
}

func (h *PageHandler) SuperAdmin(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "super_admin.html", pageData{Title: "Administración · MenuQR", Claims: GetClaims(c)})
}

// Menu carta pública en HTML; inactivo o vencido muestran la página de menú no disponible.
func (h *PageHandler) Menu(c *fiber.Ctx) error {
	out, err := h.menu.Render(c.UserContext(), c.Params("slug"), viewerFrom(c))
	switch {
	case err == nil:
		return h.render(c, fiber.StatusOK, "menu.html", pageData{
			Title:      out.Restaurant.Name,
			ThemeColor: out.Restaurant.ThemeColor,
			Menu:       out,
		})
	case errors.Is(err, domain.ErrRestaurantInactive), errors.Is(err, domain.ErrSubscriptionExpired):
		return h.render(c, fiber.StatusForbidden, "unavailable.html", pageData{
			Title:   "Menú no disponible",
			Message: "Este menú no está disponible en este momento. Consulta al personal del restaurante.",
		})
	case errors.Is(err, domain.ErrNotFound):
		return h.render(c, fiber.StatusNotFound, "unavailable.html", pageData{
			Title:   "Menú no encontrado",
			Message: "No existe un menú con esta dirección.",
		})
	}
	h.log.Error().Err(err).Str("slug", c.Params("slug")).Msg("menu page failed")
	return h.render(c, fiber.StatusInternalServerError, "unavailable.html", pageData{
		Title:   "Error",
		Message: "No pudimos cargar el menú. Intenta de nuevo en unos minutos.",
	})
}

func (h *PageHandler) render(c *fiber.Ctx, status int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("template render failed")
		return c.Status(fiber.StatusInternalServerError).SendString("error interno")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
