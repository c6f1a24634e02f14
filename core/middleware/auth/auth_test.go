package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/", ok)
	app.Get("/health", ok)
	app.Post("/reconcile-items", ok)
	return app
}

func TestNew(t *testing.T) {
	app := newApp(Config{ApiKey: "secret", PublicPrefixes: []string{"/", "/health"}})

	tests := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
	}{
		{"Missing key", "POST", "/reconcile-items", "", fiber.StatusUnauthorized},
		{"Wrong key", "POST", "/reconcile-items", "nope", fiber.StatusUnauthorized},
		{"Valid key", "POST", "/reconcile-items", "secret", fiber.StatusOK},
		{"Public root", "GET", "/", "", fiber.StatusOK},
		{"Public health", "GET", "/health", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(Header, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestNew_Disabled(t *testing.T) {
	app := newApp(Config{})

	resp, err := app.Test(httptest.NewRequest("POST", "/reconcile-items", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
