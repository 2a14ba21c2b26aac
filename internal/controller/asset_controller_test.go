package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/pkg/serverutils"
	"asset-selector-be/internal/service"
	"asset-selector-be/pkg/catalog"
	"asset-selector-be/pkg/matcher"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeSelectionService struct {
	lastTitle string
	lastHint  string
	reloadErr error
	reloads   int
}

func (f *fakeSelectionService) Initialize(ctx context.Context, source catalog.Source) error {
	return nil
}

func (f *fakeSelectionService) Select(ctx context.Context, title, sentimentHint string) entity.SelectedAsset {
	return f.SelectDetailed(ctx, title, sentimentHint).Asset
}

func (f *fakeSelectionService) SelectDetailed(ctx context.Context, title, sentimentHint string) service.SelectionResult {
	f.lastTitle, f.lastHint = title, sentimentHint
	return service.SelectionResult{
		Asset: entity.SelectedAsset{
			URL:       "https://cdn.test/moon.jpg",
			LocalPath: "/tmp/moon.jpg",
			Metadata:  entity.AssetMetadata{Sentiment: entity.SentimentBullish, Category: "to_the_moon"},
		},
		Sentiment: entity.SentimentBullish,
		Stage:     matcher.StageKeyword,
	}
}

func (f *fakeSelectionService) Reload(ctx context.Context) error {
	f.reloads++
	return f.reloadErr
}

func (f *fakeSelectionService) RecencySnapshot() *entity.RecencySnapshot {
	return &entity.RecencySnapshot{
		LastUpdated:       time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		GlobalRecent:      []string{"https://cdn.test/moon.jpg"},
		PerCategoryRecent: map[string][]string{"to_the_moon": {"https://cdn.test/moon.jpg"}},
	}
}

func (f *fakeSelectionService) CatalogStats() catalog.Stats {
	return catalog.Stats{
		Total:       1,
		BySentiment: map[entity.Sentiment]int{entity.SentimentBullish: 1},
		ByCategory:  map[string]int{"to_the_moon": 1},
	}
}

func (f *fakeSelectionService) Flush(ctx context.Context) error {
	return nil
}

func newTestApp(svc service.ISelectionService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewAssetController(svc).RegisterRoutes(app.Group("/api"), serverutils.JwtMiddleware(testSecret))
	return app
}

func adminToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ops",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, body, token string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestSelect(t *testing.T) {
	svc := &fakeSelectionService{}
	app := newTestApp(svc)

	status, env := doRequest(t, app, "POST", "/api/assets/v1/select", `{"title":"Stocks rally","sentiment":"bullish"}`, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Stocks rally", svc.lastTitle)
	assert.Equal(t, "bullish", svc.lastHint)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "https://cdn.test/moon.jpg", data["url"])
	assert.Equal(t, "/tmp/moon.jpg", data["localPath"])
	assert.Equal(t, "keyword", data["matchStage"])
	assert.Equal(t, "bullish", data["resolvedSentiment"])
}

func TestSelect_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"sentiment":"bullish"}`},
		{"unknown sentiment", `{"title":"x","sentiment":"euphoric"}`},
		{"malformed body", `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSelectionService{}
			status, env := doRequest(t, newTestApp(svc), "POST", "/api/assets/v1/select", tt.body, "")
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.False(t, env.Success)
			assert.Empty(t, svc.lastTitle)
		})
	}
}

func TestRecencyAndCatalog(t *testing.T) {
	app := newTestApp(&fakeSelectionService{})

	status, env := doRequest(t, app, "GET", "/api/assets/v1/recency", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), `"globalRecent":["https://cdn.test/moon.jpg"]`)

	status, env = doRequest(t, app, "GET", "/api/assets/v1/catalog", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), `"total":1`)
}

func TestReloadCatalog(t *testing.T) {
	tests := []struct {
		name       string
		token      func(t *testing.T) string
		reloadErr  error
		wantStatus int
		wantReload int
	}{
		{"no token", func(t *testing.T) string { return "" }, nil, fiber.StatusUnauthorized, 0},
		{"garbage token", func(t *testing.T) string { return "not.a.jwt" }, nil, fiber.StatusUnauthorized, 0},
		{"non admin", func(t *testing.T) string { return adminToken(t, "user") }, nil, fiber.StatusForbidden, 0},
		{"admin", func(t *testing.T) string { return adminToken(t, "admin") }, nil, fiber.StatusOK, 1},
		{"source failure", func(t *testing.T) string { return adminToken(t, "admin") }, errors.New("manifest missing"), fiber.StatusBadGateway, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSelectionService{reloadErr: tt.reloadErr}
			status, _ := doRequest(t, newTestApp(svc), "POST", "/api/assets/v1/catalog/reload", "", tt.token(t))
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantReload, svc.reloads)
		})
	}
}

func TestReloadCatalog_DisabledWithoutSecret(t *testing.T) {
	svc := &fakeSelectionService{}
	app := fiber.New()
	NewAssetController(svc).RegisterRoutes(app.Group("/api"), serverutils.JwtMiddleware(""))

	status, _ := doRequest(t, app, "POST", "/api/assets/v1/catalog/reload", "", adminToken(t, "admin"))
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Zero(t, svc.reloads)
}
