package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/MenuQR-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/MenuQR-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret    = "test-secret-key-for-unit-tests"
	testUserID       = "00000000-0000-0000-0000-000000000001"
	testRestaurantID = "00000000-0000-0000-0000-000000000002"
	testIssuer       = "menuqr-test"
	testExpMin       = 60
	testCookie       = "menuqr_session"
)

var testSession = apphttp.SessionConfig{Secret: testJWTSecret, CookieName: testCookie}

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware + RequireRole
// y un handler dummy que devuelve 200 si pasa los middlewares.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testSession),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func signClaims(t *testing.T, claims pkgjwt.Claims) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, claims)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return "Bearer " + signClaims(t, pkgjwt.Claims{UserID: testUserID, Role: role, RestaurantID: testRestaurantID})
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_SuperAdminAccedeRutaSuperAdmin(t *testing.T) {
	app := buildTestApp("SUPER_ADMIN")
	resp := doRequest(t, app, tokenForRole(t, "SUPER_ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "SUPER_ADMIN", body["role"])
}

func TestRequireRole_MultiRol(t *testing.T) {
	app := buildTestApp("RESTAURANT_OWNER", "STAFF")
	resp := doRequest(t, app, tokenForRole(t, "STAFF"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_OwnerBloqueadoEnRutaSuperAdmin(t *testing.T) {
	app := buildTestApp("SUPER_ADMIN")
	resp := doRequest(t, app, tokenForRole(t, "RESTAURANT_OWNER"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp("SUPER_ADMIN")
	resp := doRequest(t, app, tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp("SUPER_ADMIN"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoYTokenInvalidos(t *testing.T) {
	app := buildTestApp("SUPER_ADMIN")
	for _, header := range []string{"Token abc", "Bearer token.invalido.aqui"} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "INVALID_TOKEN", header)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_AceptaCookieDeSesion(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testSession), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":       apphttp.GetUserID(c),
			"restaurant_id": apphttp.GetRestaurantID(c),
			"role":          apphttp.GetRole(c),
		})
	})

	tok := signClaims(t, pkgjwt.Claims{UserID: testUserID, Role: "RESTAURANT_OWNER", RestaurantID: testRestaurantID})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: tok})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testRestaurantID, body["restaurant_id"])
	assert.Equal(t, "RESTAURANT_OWNER", body["role"])
}

func TestOptionalSession_TokenInvalidoSigueAnonimo(t *testing.T) {
	app := fiber.New()
	app.Get("/", apphttp.OptionalSession(testSession), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"anon": apphttp.GetClaims(c) == nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "basura"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["anon"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RestaurantScope
// ──────────────────────────────────────────────────────────────────────────────

func scopeApp() *fiber.App {
	app := fiber.New()
	app.Get("/dashboard", apphttp.AuthMiddleware(testSession), apphttp.RestaurantScope(), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetRestaurantID(c))
	})
	return app
}

func scopeRequest(t *testing.T, claims pkgjwt.Claims) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signClaims(t, claims))
	resp, err := scopeApp().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRestaurantScope(t *testing.T) {
	owner := pkgjwt.Claims{UserID: testUserID, Role: "RESTAURANT_OWNER", RestaurantID: testRestaurantID}
	resp := scopeRequest(t, owner)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testRestaurantID, string(body))

	admin := pkgjwt.Claims{UserID: "admin-1", Role: "SUPER_ADMIN"}
	resp = scopeRequest(t, admin)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "IMPERSONATION_REQUIRED")

	impersonating := admin.WithImpersonation(pkgjwt.Impersonation{
		OriginalUserID: "admin-1", ImpersonatedUserID: "owner-9", RestaurantID: "r-9", RestaurantName: "La Esquina",
	})
	resp = scopeRequest(t, impersonating)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "r-9", string(body))

	staffless := pkgjwt.Claims{UserID: testUserID, Role: "STAFF"}
	resp = scopeRequest(t, staffless)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
