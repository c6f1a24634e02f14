package server

import (
	"returns-bridge/core/logger"
	"returns-bridge/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Fail writes a client error envelope.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// InternalError logs err with the request's ray id and writes a generic 500 envelope.
// Driver error text never reaches the client; the correlationId points to the log line.
func InternalError(c *fiber.Ctx, l *zap.Logger, message string, err error, details any) error {
	logger.WithRayID(l, c).Error(message, zap.Error(err))

	body := fiber.Map{
		"success":       false,
		"error":         message,
		"correlationId": rayid.FromCtx(c),
	}
	if details != nil {
		body["details"] = details
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// OK writes a success envelope with a data payload.
func OK(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
