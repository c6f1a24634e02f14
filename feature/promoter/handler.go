package promoter

import (
	"errors"

	"returns-bridge/core/logger"
	"returns-bridge/core/server"
	"returns-bridge/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoginRequest is the body of POST /api/login-promotor.
type LoginRequest struct {
	CPF      string `json:"cpf" validate:"required,max=14"`
	Password string `json:"senha" validate:"required,max=14"`
}

// SettlementsRequest is the body of POST /api/listar-acertos-promotor.
// required on an any field only rejects null or absence; the handler parses the value.
type SettlementsRequest struct {
	ClientID any `json:"CLI_COD" validate:"required" swaggertype:"integer"`
}

// Handler handles HTTP requests for promoters.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the promoter routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	api := app.Group("/api")
	api.Post("/login-promotor", h.HandleLogin)
	api.Post("/listar-acertos-promotor", h.HandleSettlements)
}

// HandleLogin authenticates a promoter.
// @Summary Promoter login
// @Description Matches the CPF against active clients in the promoter groups.
// @Tags promoter
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Promoter"
// @Failure 400 {object} map[string]interface{} "Missing fields"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/login-promotor [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if berr := server.BindAndValidate(c, &req); berr != nil {
		return berr.Write(c)
	}

	l := logger.WithRayID(h.service.logger, c)

	promoter, err := h.service.Login(c.Context(), req.CPF, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		l.Info("Promoter login rejected")
		return server.Fail(c, fiber.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return server.InternalError(c, h.service.logger, "failed to log in", err, nil)
	}

	l.Info("Promoter logged in", zap.Int64("client_id", promoter.ID))
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "login successful",
		"promotor": promoter,
	})
}

// HandleSettlements lists a promoter's pending settlements.
// @Summary Promoter settlements
// @Description Runs the settlement procedure for a client code.
// @Tags promoter
// @Accept json
// @Produce json
// @Param request body SettlementsRequest true "Client code"
// @Success 200 {object} map[string]interface{} "Settlements"
// @Failure 400 {object} map[string]interface{} "Missing CLI_COD"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/listar-acertos-promotor [post]
func (h *Handler) HandleSettlements(c *fiber.Ctx) error {
	var req SettlementsRequest
	if berr := server.BindAndValidate(c, &req); berr != nil {
		return berr.Write(c)
	}

	clientID, err := utils.ParseInt(req.ClientID)
	if err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "CLI_COD must be an integer")
	}

	rows, err := h.service.Settlements(c.Context(), clientID)
	if err != nil {
		return server.InternalError(c, h.service.logger, "failed to list settlements", err, nil)
	}

	logger.WithRayID(h.service.logger, c).Debug("Settlements listed", zap.Int64("client_id", clientID), zap.Int("rows", len(rows)))
	return server.OK(c, rows)
}
