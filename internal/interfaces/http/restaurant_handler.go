package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/menu"
	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
)

// RestaurantHandler perfil, imágenes, QR y suscripción del restaurante de la sesión.
type RestaurantHandler struct {
	restaurants   *usecase.RestaurantUseCase
	qr            *menu.QRUseCase
	subscriptions *subscription.SubscriptionUseCase
}

func NewRestaurantHandler(restaurants *usecase.RestaurantUseCase, qr *menu.QRUseCase, subscriptions *subscription.SubscriptionUseCase) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, qr: qr, subscriptions: subscriptions}
}

// Get godoc
// @Summary      Perfil del restaurante
// @Tags         dashboard-restaurant
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RestaurantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/restaurant [get]
func (h *RestaurantHandler) Get(c *fiber.Ctx) error {
	out, err := h.restaurants.Get(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar perfil del restaurante
// @Description  Edición parcial; cambiar el slug cambia la URL pública del menú.
// @Tags         dashboard-restaurant
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateRestaurantRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dashboard/restaurant [patch]
func (h *RestaurantHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRestaurantRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.restaurants.Update(c.UserContext(), GetRestaurantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadImage godoc
// @Summary      Subir logo o portada
// @Tags         dashboard-restaurant
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        kind  path      string  true  "logo | cover"
// @Param        file  formData  file    true  "JPEG, PNG o WebP (máx. 5 MB)"
// @Success      200   {object}  dto.ImageUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/restaurant/images/{kind} [post]
func (h *RestaurantHandler) UploadImage(c *fiber.Ctx) error {
	img, closer, err := readImage(c)
	if closer == nil {
		return err
	}
	defer closer.Close()
	out, err := h.restaurants.UploadImage(c.UserContext(), GetRestaurantID(c), c.Params("kind"), img)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// QRCode godoc
// @Summary      Código QR del menú (PNG)
// @Tags         dashboard-restaurant
// @Security     Bearer
// @Produce      png
// @Param        size  query  int  false  "Lado en píxeles (128-2048, default 512)"
// @Success      200  {file}  file
// @Router       /api/dashboard/qr.png [get]
func (h *RestaurantHandler) QRCode(c *fiber.Ctx) error {
	png, err := h.qr.PNG(c.UserContext(), GetRestaurantID(c), c.QueryInt("size", 0))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(png)
}

// Poster godoc
// @Summary      Cartel imprimible con el QR (PDF)
// @Tags         dashboard-restaurant
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/dashboard/qr.pdf [get]
func (h *RestaurantHandler) Poster(c *fiber.Ctx) error {
	pdf, slug, err := h.qr.PosterPDF(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="menu-`+slug+`.pdf"`)
	return c.Send(pdf)
}

// Subscription godoc
// @Summary      Estado de la suscripción
// @Description  El estado se reconcilia con la fecha aunque el barrido no haya corrido.
// @Tags         dashboard-subscription
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionStatusResponse
// @Router       /api/dashboard/subscription [get]
func (h *RestaurantHandler) Subscription(c *fiber.Ctx) error {
	out, err := h.subscriptions.GetStatus(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetAutoRenew godoc
// @Summary      Activar o desactivar la renovación automática
// @Tags         dashboard-subscription
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetAutoRenewRequest  true  "auto_renew"
// @Success      200   {object}  dto.SubscriptionStatusResponse
// @Router       /api/dashboard/subscription/auto-renew [put]
func (h *RestaurantHandler) SetAutoRenew(c *fiber.Ctx) error {
	var in dto.SetAutoRenewRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.subscriptions.SetAutoRenew(c.UserContext(), GetRestaurantID(c), in.AutoRenew)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SubscriptionHistory godoc
// @Summary      Historial de períodos de suscripción
// @Tags         dashboard-subscription
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SubscriptionHistoryResponse
// @Router       /api/dashboard/subscription/history [get]
func (h *RestaurantHandler) SubscriptionHistory(c *fiber.Ctx) error {
	out, err := h.subscriptions.ListHistory(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
