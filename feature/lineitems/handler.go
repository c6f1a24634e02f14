package lineitems

import (
	"errors"

	"returns-bridge/core/database"
	"returns-bridge/core/logger"
	"returns-bridge/core/middleware/rayid"
	"returns-bridge/core/reconcile"
	"returns-bridge/core/server"

	"github.com/gofiber/fiber/v2"
)

// ReconcileRequest is the body of POST /reconcile-items.
type ReconcileRequest struct {
	Items []reconcile.ChangeRequest `json:"items"`
}

// OrderItemsRequest is the body of POST /api/consultar-itens-pedido.
type OrderItemsRequest struct {
	OrderRef reconcile.Value `json:"REV_COD"`
	OrderID  reconcile.Value `json:"PED_COD"`
}

// Handler handles HTTP requests for line items.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the line item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/reconcile-items", h.HandleReconcile)

	api := app.Group("/api")
	api.Post("/atualizar-status-itens-ipe", h.HandleLegacyReconcile)
	api.Post("/consultar-itens-pedido", h.HandleOrderItems)
}

// HandleReconcile applies a batch of line item changes.
// @Summary Reconcile line items
// @Description Classifies each item into delete, insert, update or reject and applies the batch in one transaction.
// @Tags line-items
// @Accept json
// @Produce json
// @Param request body ReconcileRequest true "Batch of change requests"
// @Success 200 {object} map[string]interface{} "Reconciliation result"
// @Failure 400 {object} map[string]interface{} "Empty or invalid batch"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /reconcile-items [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := h.reconcile(c, req.Items)
	if err != nil {
		return h.writeError(c, err)
	}

	body := fiber.Map{
		"success":  true,
		"inserted": res.Inserted,
		"updated":  res.Updated,
		"deleted":  res.Deleted,
		"details":  res.Details,
	}
	if len(res.Warnings) > 0 {
		body["warnings"] = res.Warnings
	}
	if len(res.Failures) > 0 {
		body["failures"] = res.Failures
	}
	return c.JSON(body)
}

// HandleLegacyReconcile accepts the historical {itens: [...]} payload with CAD_IPE field names.
// @Summary Reconcile line items (legacy)
// @Description Same as /reconcile-items, with upper-case CAD_IPE field names and the historical response shape.
// @Tags line-items
// @Accept json
// @Produce json
// @Param request body object true "{ itens: [...] }"
// @Success 200 {object} map[string]interface{} "Reconciliation result"
// @Failure 400 {object} map[string]interface{} "Empty or invalid batch"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/atualizar-status-itens-ipe [post]
func (h *Handler) HandleLegacyReconcile(c *fiber.Ctx) error {
	var req legacyRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := h.reconcile(c, req.changeRequests())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(legacyResponse(res))
}

// HandleOrderItems lists the items of an order through the order items procedure.
// @Summary Order items
// @Description Looks up line items by REV_COD and/or PED_COD.
// @Tags line-items
// @Accept json
// @Produce json
// @Param request body OrderItemsRequest true "Order keys"
// @Success 200 {object} map[string]interface{} "Rows returned by the procedure"
// @Failure 400 {object} map[string]interface{} "Missing keys"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/consultar-itens-pedido [post]
func (h *Handler) HandleOrderItems(c *fiber.Ctx) error {
	var req OrderItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	orderRef, err := optionalKey(req.OrderRef)
	if err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "REV_COD must be an integer")
	}
	orderID, err := optionalKey(req.OrderID)
	if err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "PED_COD must be an integer")
	}

	rows, err := h.service.OrderItems(c.Context(), orderRef, orderID)
	if errors.Is(err, ErrMissingOrderKey) {
		return server.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return server.InternalError(c, h.service.logger, "failed to list order items", err, nil)
	}
	return server.OK(c, rows)
}

func (h *Handler) reconcile(c *fiber.Ctx, reqs []reconcile.ChangeRequest) (*reconcile.Result, error) {
	l := logger.WithRayID(h.service.logger, c)
	return h.service.Reconcile(c.Context(), rayid.FromCtx(c), reqs, l)
}

// writeError maps reconciliation errors to HTTP envelopes.
func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	var invalid *reconcile.InvalidBatchError
	var itemErr *reconcile.ItemError

	switch {
	case errors.Is(err, reconcile.ErrEmptyBatch):
		return server.Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &invalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":  false,
			"error":    reconcile.ErrInvalidBatch.Error(),
			"failures": invalid.Failures,
		})
	case errors.Is(err, database.ErrUnavailable):
		return server.InternalError(c, h.service.logger, "database unavailable", err, nil)
	case errors.As(err, &itemErr):
		return server.InternalError(c, h.service.logger, "failed to reconcile items", err, fiber.Map{
			"index":  itemErr.Index,
			"action": itemErr.Kind,
			"key":    itemErr.Key,
		})
	default:
		return server.InternalError(c, h.service.logger, "failed to reconcile items", err, nil)
	}
}

func optionalKey(v reconcile.Value) (*int64, error) {
	if !v.Present() {
		return nil, nil
	}
	i, err := v.Int()
	if err != nil {
		return nil, err
	}
	return &i, nil
}
