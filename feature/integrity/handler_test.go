package integrity

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"returns-bridge/core/database"
	"returns-bridge/core/storage"
	"returns-bridge/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, db database.Getter, client storage.Client) *fiber.App {
	t.Helper()
	app := fiber.New()
	NewHandler(NewService(db, client, "test-bucket", "", zap.NewNop())).RegisterRoutes(app)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleSchemaCheck(t *testing.T) {
	app := setupTestApp(t, database.Static{DB: setupSQLite(t, true)}, nil)

	status, body := getJSON(t, app, "/integrity/schema")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["matched"])
	assert.Equal(t, "ok", body["status"])
}

func TestHandleSchemaCheck_Drift(t *testing.T) {
	app := setupTestApp(t, database.Static{DB: setupSQLite(t, false)}, nil)

	status, body := getJSON(t, app, "/integrity/schema")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["matched"])
	assert.Len(t, body["missing_columns"], 13)
}

func TestHandleSchemaCheck_Unavailable(t *testing.T) {
	app := setupTestApp(t, database.Static{}, nil)

	status, body := getJSON(t, app, "/integrity/schema")
	assert.Equal(t, 500, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "schema check failed", body["error"])
}

func TestHandleStorageCheck(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	app := setupTestApp(t, database.Static{}, mockClient)

	status, body := getJSON(t, app, "/integrity/storage")
	assert.Equal(t, 200, status)
	assert.Equal(t, "checked", body["status"])
	assert.Equal(t, true, body["exists"])
	mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleStorageCheck_Fix(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
	mockClient.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil).Once()
	app := setupTestApp(t, database.Static{}, mockClient)

	status, body := getJSON(t, app, "/integrity/storage?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, "fixed", body["status"])
	mockClient.AssertExpectations(t)
}

func TestHandleStorageCheck_MissingWithoutFix(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
	app := setupTestApp(t, database.Static{}, mockClient)

	status, body := getJSON(t, app, "/integrity/storage")
	assert.Equal(t, 200, status)
	assert.Equal(t, "checked", body["status"])
	assert.Equal(t, false, body["exists"])
}

func TestHandleStorageCheck_Error(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, errors.New("connection refused"))
	app := setupTestApp(t, database.Static{}, mockClient)

	status, body := getJSON(t, app, "/integrity/storage")
	assert.Equal(t, 500, status)
	assert.Equal(t, "storage check failed", body["error"])
	assert.NotNil(t, body["correlationId"])
}

func TestHandleStorageCheck_Disabled(t *testing.T) {
	app := setupTestApp(t, database.Static{}, nil)

	status, body := getJSON(t, app, "/integrity/storage")
	assert.Equal(t, 200, status)
	assert.Equal(t, "disabled", body["status"])
}

func TestHandleIntegrityCheck(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, errors.New("timeout"))
	app := setupTestApp(t, database.Static{DB: setupSQLite(t, true)}, mockClient)

	status, body := getJSON(t, app, "/integrity")
	assert.Equal(t, 200, status)

	schemaReport, ok := body["schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, schemaReport["matched"])

	storageReport, ok := body["storage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "error", storageReport["status"])
}
