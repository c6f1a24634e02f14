package integrity

import (
	"returns-bridge/core/database"
	"returns-bridge/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the integrity feature. client may be nil.
func NewFeature(db database.Getter, client storage.Client, bucket, region string, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(db, client, bucket, region, logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
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
