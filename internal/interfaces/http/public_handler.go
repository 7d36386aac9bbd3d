package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/menu"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
)

// PublicHandler endpoints anónimos: carta pública y boletín.
type PublicHandler struct {
	menu       *menu.PublicMenuUseCase
	newsletter *usecase.NewsletterUseCase
}

func NewPublicHandler(menuUC *menu.PublicMenuUseCase, newsletter *usecase.NewsletterUseCase) *PublicHandler {
	return &PublicHandler{menu: menuUC, newsletter: newsletter}
}

// Menu godoc
// @Summary      Carta pública de un restaurante
// @Description  Registra una vista del menú. Restaurante inactivo -> 403; suscripción vencida -> 402.
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Slug del restaurante"
// @Success      200   {object}  dto.PublicMenuResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/public/menu/{slug} [get]
func (h *PublicHandler) Menu(c *fiber.Ctx) error {
	out, err := h.menu.Render(c.UserContext(), c.Params("slug"), viewerFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Subscribe godoc
// @Summary      Suscribirse al boletín
// @Description  Idempotente: repetir el email no crea otro registro ni reenvía la confirmación.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NewsletterRequest  true  "email"
// @Success      201   {object}  dto.MessageResponse
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/public/newsletter [post]
func (h *PublicHandler) Subscribe(c *fiber.Ctx) error {
	var in dto.NewsletterRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	created, err := h.newsletter.Subscribe(c.UserContext(), in.Email)
	if err != nil {
		return writeError(c, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "suscripción registrada"})
	}
	return c.JSON(dto.MessageResponse{Message: "el email ya estaba suscrito"})
}

func viewerFrom(c *fiber.Ctx) dto.Viewer {
	return dto.Viewer{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Language:  c.Get(fiber.HeaderAcceptLanguage),
	}
}
