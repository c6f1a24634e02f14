package catalog

import (
	"returns-bridge/core/logger"
	"returns-bridge/core/server"
	"returns-bridge/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DiscountRulesRequest is the body of POST /api/consultar-regras-desconto.
// required on an any field only rejects null or absence; the handler parses the value.
type DiscountRulesRequest struct {
	OrderID any `json:"PED_COD" validate:"required" swaggertype:"integer"`
}

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	api := app.Group("/api")
	api.Post("/consultar-produtos-gerais", h.HandleProducts)
	api.Post("/consultar-regras-desconto", h.HandleDiscountRules)
}

// HandleProducts returns the general product catalog.
// @Summary General products
// @Description Runs the catalog procedure for the active catalog. Results are cached; pass refresh=true to reload.
// @Tags catalog
// @Produce json
// @Param refresh query bool false "Bypass the cache"
// @Success 200 {object} map[string]interface{} "Products"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/consultar-produtos-gerais [post]
func (h *Handler) HandleProducts(c *fiber.Ctx) error {
	rows, err := h.service.Products(c.Context(), c.QueryBool("refresh"))
	if err != nil {
		return server.InternalError(c, h.service.logger, "failed to list products", err, nil)
	}
	return server.OK(c, rows)
}

// HandleDiscountRules lists the discount rules of an order.
// @Summary Discount rules
// @Description Lists cad_dpd tiers joined with their cad_tdp description.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body DiscountRulesRequest true "Order"
// @Success 200 {object} map[string]interface{} "Rules"
// @Failure 400 {object} map[string]interface{} "Missing PED_COD"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/consultar-regras-desconto [post]
func (h *Handler) HandleDiscountRules(c *fiber.Ctx) error {
	var req DiscountRulesRequest
	if berr := server.BindAndValidate(c, &req); berr != nil {
		return berr.Write(c)
	}

	orderID, err := utils.ParseInt(req.OrderID)
	if err != nil || orderID == 0 {
		return server.Fail(c, fiber.StatusBadRequest, "PED_COD must be a non-zero integer")
	}

	rules, err := h.service.DiscountRules(c.Context(), orderID)
	if err != nil {
		return server.InternalError(c, h.service.logger, "failed to list discount rules", err, nil)
	}

	logger.WithRayID(h.service.logger, c).Debug("Discount rules listed", zap.Int64("order_id", orderID), zap.Int("rules", len(rules)))
	return c.JSON(fiber.Map{
		"success": true,
		"data":    rules,
		"total":   len(rules),
	})
}
