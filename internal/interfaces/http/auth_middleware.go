package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/pkg/jwt"
)

// Locals keys para la sesión en Fiber.
const (
	LocalClaims       = "claims"
	LocalUserID       = "user_id"
	LocalRestaurantID = "restaurant_id"
	LocalRole         = "role"
)

// SessionConfig datos para validar el token de sesión y emitir la cookie.
type SessionConfig struct {
	Secret       string
	CookieName   string
	TTL          time.Duration
	SecureCookie bool
}

// setSessionCookie guarda el token en una cookie HttpOnly para las rutas de página.
func setSessionCookie(c *fiber.Ctx, cfg SessionConfig, token string) {
	if cfg.CookieName == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.TTL),
		HTTPOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx, cfg SessionConfig) {
	if cfg.CookieName == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// AuthMiddleware valida el JWT (Bearer o cookie de sesión) y carga los claims en c.Locals.
func AuthMiddleware(cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, bad := extractToken(c, cfg.CookieName)
		if bad {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida"})
		}
		claims, err := jwt.Parse(cfg.Secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		setClaims(c, claims)
		return c.Next()
	}
}

// OptionalSession carga los claims si hay un token válido; sin token o con token inválido sigue como anónimo.
func OptionalSession(cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, bad := extractToken(c, cfg.CookieName); !bad && tokenString != "" {
			if claims, err := jwt.Parse(cfg.Secret, tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		return c.Next()
	}
}

// extractToken prioriza el header Authorization; bad indica un header con formato incorrecto.
func extractToken(c *fiber.Ctx, cookieName string) (token string, bad bool) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", true
		}
		return strings.TrimSpace(parts[1]), false
	}
	if cookieName == "" {
		return "", false
	}
	return c.Cookies(cookieName), false
}

func setClaims(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalClaims, claims)
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalRestaurantID, claims.RestaurantID)
	c.Locals(LocalRole, claims.Role)
}

// GetClaims devuelve los claims de la sesión o nil si la petición es anónima.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRestaurantID devuelve el restaurante efectivo (el suplantado si hay suplantación activa).
func GetRestaurantID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRestaurantID).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
