package promoter

import (
	"returns-bridge/core/database"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the promoter feature.
func NewFeature(db database.Getter, settlementProcedure string, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(db, settlementProcedure, logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "promoter"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
