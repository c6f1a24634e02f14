package integrity

import (
	"errors"

	"returns-bridge/core/logger"
	"returns-bridge/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs every check and reports each one separately.
// @Summary Run All Integrity Checks
// @Description Runs the schema and storage checks. A failing check is reported in place and does not fail the request.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]any)

	if schemaReport, err := h.service.CheckSchema(ctx); err != nil {
		l.Error("Schema check failed", zap.Error(err))
		report["schema"] = fiber.Map{"status": "error"}
	} else {
		report["schema"] = schemaReport
	}

	if bucketReport, err := h.service.CheckStorage(ctx); errors.Is(err, ErrStorageDisabled) {
		report["storage"] = fiber.Map{"status": "disabled"}
	} else if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		report["storage"] = fiber.Map{"status": "error"}
	} else {
		report["storage"] = bucketReport
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the line item table against the model.
// @Summary Check Line Item Schema
// @Description Compares the CAD_IPE columns with the columns the service reads and writes.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		return server.InternalError(c, h.service.logger, "schema check failed", err, nil)
	}
	if !report.Matched {
		l.Warn("Schema drift detected",
			zap.Strings("missing", report.MissingColumns),
			zap.Strings("type_mismatches", report.TypeMismatches))
	}
	return c.JSON(report)
}

// HandleStorageCheck checks and optionally creates the report bucket.
// @Summary Check Report Storage
// @Description Checks that the report archive bucket exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckStorage(c.Context())
	if errors.Is(err, ErrStorageDisabled) {
		return c.JSON(fiber.Map{"status": "disabled"})
	}
	if err != nil {
		return server.InternalError(c, h.service.logger, "storage check failed", err, nil)
	}

	if !report.Exists {
		l.Warn("Report bucket missing", zap.String("bucket", report.Bucket))

		if fix {
			l.Info("Attempting to create report bucket")
			if err := h.service.FixStorage(c.Context()); err != nil {
				return server.InternalError(c, h.service.logger, "failed to create bucket", err, fiber.Map{"bucket": report.Bucket})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"bucket": report.Bucket,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"bucket": report.Bucket,
		"exists": report.Exists,
	})
}
