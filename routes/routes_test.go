package routes

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestForecastRequiresAuth(t *testing.T) {
	app := fiber.New()
	SetupRoutes(app)

	req := httptest.NewRequest("GET", "/api/v1/forecast/", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRouteRegistered(t *testing.T) {
	app := fiber.New()
	SetupRoutes(app)

	// malformed body should be rejected before any database access
	req := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUnknownRouteNotFound(t *testing.T) {
	app := fiber.New()
	SetupRoutes(app)

	req := httptest.NewRequest("GET", "/api/v1/unknown", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
