package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Header is the request header carrying the API key.
const Header = "X-API-Key"

// Config holds the API key middleware settings.
type Config struct {
	// ApiKey is the expected key. An empty key disables the check.
	ApiKey string
	// PublicPrefixes are path prefixes served without a key.
	PublicPrefixes []string
}

// New returns a middleware rejecting requests without the configured API key.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}

		path := c.Path()
		for _, prefix := range cfg.PublicPrefixes {
			if path == prefix || (prefix != "/" && strings.HasPrefix(path, prefix)) {
				return c.Next()
			}
		}

		key := c.Get(Header)
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
