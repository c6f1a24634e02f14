package integrity

import (
	"testing"

	"returns-bridge/core/database"
	"returns-bridge/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(database.Static{}, new(mocks.Client), "test-bucket", "", zap.NewNop())

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
