package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/bakery-catalog/api/pages"
	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
	"github.com/angelmondragon/bakery-catalog/internal/testutil"
	"github.com/angelmondragon/bakery-catalog/pkg/config"
	"github.com/angelmondragon/bakery-catalog/pkg/logger"
	"github.com/angelmondragon/bakery-catalog/pkg/metrics"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *config.Config {
	return &config.Config{
		App:         config.AppConfig{Env: config.AppEnvDev},
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, pinger stubPinger) (http.Handler, *prometheus.Registry) {
	t.Helper()

	client := testutil.NewSQLiteClient(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	registry := prometheus.NewRegistry()
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	categoryRepo := categories.NewRepository(client.DB())
	categoryService, err := categories.NewService(categoryRepo, catalogMetrics)
	require.NoError(t, err)
	productService, err := product.NewService(product.NewRepository(client.DB()), client, categoryRepo, catalogMetrics)
	require.NoError(t, err)

	renderer, err := pages.New()
	require.NoError(t, err)

	return NewRouter(cfg, logg, pinger, nil, registry, renderer, categoryService, productService), registry
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	rec := do(t, h, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"live"`)

	rec = do(t, h, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)
}

func TestHealthReadyReportsFailingDatabase(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{err: errors.New("down")})

	rec := do(t, h, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unavailable"`)
}

func TestRootRedirectsToProducts(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/products/", rec.Header().Get("Location"))
}

func TestCatalogScenario(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	rec := do(t, h, http.MethodPost, "/api/categories/", `{"name":"Breads"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var category categories.CategoryDTO
	decode(t, rec, &category)
	assert.Equal(t, "Breads", category.Name)

	body := `{"product":{"name":"Sourdough","category":` + jsonUint(category.ID) + `,"description":"Tangy"},` +
		`"variant":{"size":"Large","price":"5.5","sku":"SD-L-001"}}`
	rec = do(t, h, http.MethodPost, "/api/products/with-variant/", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created product.ProductDTO
	decode(t, rec, &created)
	assert.Equal(t, "Sourdough", created.Name)
	assert.True(t, created.IsActive)
	require.Len(t, created.Variants, 1)
	assert.Equal(t, "5.50", created.Variants[0].Price)

	rec = do(t, h, http.MethodPost, "/api/products/with-variant", body)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	env := decode(t, rec, nil)
	assert.Contains(t, env.Error.Details, "variant.sku")

	rec = do(t, h, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []product.ProductDTO
	decode(t, rec, &list)
	require.Len(t, list, 1)

	rec = do(t, h, http.MethodGet, "/products/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Sourdough")
	assert.Contains(t, rec.Body.String(), "SD-L-001")

	rec = do(t, h, http.MethodGet, "/products/"+jsonUint(created.ID)+"/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "5.50")
	assert.Contains(t, rec.Body.String(), "Breads")

	rec = do(t, h, http.MethodGet, "/products/categories/"+jsonUint(category.ID)+"/products/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sourdough")

	rec = do(t, h, http.MethodDelete, "/api/categories/"+jsonUint(category.ID), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/products/"+jsonUint(created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var orphan product.ProductDTO
	decode(t, rec, &orphan)
	assert.Nil(t, orphan.Category)
}

func TestHTMLCreateFlows(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	rec := do(t, h, http.MethodGet, "/products/categories/create/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postForm(t, h, "/products/categories/create/", url.Values{"name": {"Pastries"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products/categories/", rec.Header().Get("Location"))

	rec = do(t, h, http.MethodGet, "/products/categories/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pastries")

	rec = do(t, h, http.MethodGet, "/products/create/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pastries")

	rec = postForm(t, h, "/products/create/", url.Values{
		"name":     {"Croissant"},
		"category": {"1"},
		"size":     {"Small"},
		"price":    {"abc"},
		"sku":      {"CR-S-001"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "enter a number")

	rec = postForm(t, h, "/products/create/", url.Values{
		"name":         {"Croissant"},
		"category":     {"1"},
		"is_active":    {"on"},
		"size":         {"Small"},
		"price":        {"2.25"},
		"sku":          {"CR-S-001"},
		"is_available": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/products/", rec.Header().Get("Location"))

	rec = do(t, h, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Croissant")
}

func TestNotFoundNegotiatesFormat(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	rec := do(t, h, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec, nil).Error.Code)

	rec = do(t, h, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = do(t, h, http.MethodGet, "/products/999/", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = do(t, h, http.MethodGet, "/products/abc", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIRejectsInvalidPayloads(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	rec := do(t, h, http.MethodPost, "/api/products", `{"name":"","category":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec, nil).Error.Code)

	rec = do(t, h, http.MethodGet, "/api/products/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPISetsCORSHeaders(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", "http://shop.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(), stubPinger{})

	do(t, h, http.MethodGet, "/api/products", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bakery_http_requests_total{method="GET",route="/api/products`)
}

func jsonUint(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}
