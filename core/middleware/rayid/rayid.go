package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the request/response header carrying the ray id.
	Header = "X-Ray-ID"
	// LocalsKey is the fiber.Ctx locals key holding the ray id.
	LocalsKey = "ray_id"
)

// New returns a middleware that assigns every request a ray id.
// An incoming X-Ray-ID header is kept so callers can correlate retries.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// FromCtx returns the ray id of the request, or an empty string.
func FromCtx(c *fiber.Ctx) string {
	if id, ok := c.Locals(LocalsKey).(string); ok {
		return id
	}
	return ""
}
