package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MenuQR-api/internal/domain/access"
)

// AccessGate aplica access.Decide a las rutas de página. Requiere OptionalSession antes.
// Las redirecciones son 302 para que el navegador repita con GET.
func AccessGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := access.Decide(c.Path(), authState(c))
		if d.Allowed {
			return c.Next()
		}
		return c.Redirect(d.RedirectTo, fiber.StatusFound)
	}
}

func authState(c *fiber.Ctx) *access.AuthState {
	claims := GetClaims(c)
	if claims == nil {
		return nil
	}
	return &access.AuthState{
		Role:            claims.Role,
		RestaurantID:    claims.RestaurantID,
		IsImpersonating: claims.IsImpersonating,
	}
}
