package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiter_BurstThenRefill(t *testing.T) {
	l := NewIPRateLimiter(1, 2)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "cada IP tiene su propio bucket")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("1.1.1.1"))
}

func TestIPRateLimiter_PurgesIdleVisitors(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1")
	now = now.Add(11 * time.Minute)
	l.Allow("2.2.2.2")
	assert.Len(t, l.visitors, 1)
}

func TestIPRateLimiter_PurgeRunsAtMostOncePerInterval(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	l.idle = time.Second
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1")
	now = now.Add(2 * time.Second)
	l.Allow("2.2.2.2")
	assert.Len(t, l.visitors, 2, "dentro del intervalo no se recorre el mapa")

	now = now.Add(time.Minute)
	l.Allow("3.3.3.3")
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "3.3.3.3")
}

func TestRateLimit_Returns429(t *testing.T) {
	app := fiber.New()
	app.Get("/x", RateLimit(NewIPRateLimiter(0.001, 1)), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
}
