package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"returns-bridge/core/config"
	"returns-bridge/core/database"
	"returns-bridge/feature/lineitems/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func testDB(t *testing.T) database.Getter {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LineItem{}))
	return database.Static{DB: db}
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	return resp, body
}

func TestNewServer_Routes(t *testing.T) {
	app, err := newServer(testConfig(t), zap.NewNop(), testDB(t), nil)
	require.NoError(t, err)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", body["database"])

	req := httptest.NewRequest(http.MethodPost, "/reconcile-items", bytes.NewBufferString(
		`{"items":[{"outOfOrderFlag":true,"status":9,"orderRef":5,"orderId":42,"referenceCode":"R1","unitValue":"10.50","clientRef":"tmp-1"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body = do(t, app, req)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), body["inserted"])
}

func TestNewServer_HealthUnavailable(t *testing.T) {
	app, err := newServer(testConfig(t), zap.NewNop(), database.Static{}, nil)
	require.NoError(t, err)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestNewServer_APIKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.ApiKey = "secret"
	app, err := newServer(cfg, zap.NewNop(), testDB(t), nil)
	require.NoError(t, err)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, 200, resp.StatusCode)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/integrity/schema", nil))
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/integrity/schema", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, body := do(t, app, req)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, body["matched"])
}

func TestNewServer_CORSPreflight(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.AllowOrigins = "https://app.example.com"
	cfg.Server.ApiKey = "secret"
	app, err := newServer(cfg, zap.NewNop(), testDB(t), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/reconcile-items", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, _ := do(t, app, req)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNewServer_UnknownPolicy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Reconcile.Policy = "best-effort"

	_, err := newServer(cfg, zap.NewNop(), testDB(t), nil)
	assert.Error(t, err)
}

func TestNewArchiveClient_Disabled(t *testing.T) {
	client, err := newArchiveClient(testConfig(t))
	assert.NoError(t, err)
	assert.Nil(t, client)
}
