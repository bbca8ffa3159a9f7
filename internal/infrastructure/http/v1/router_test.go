package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/domain/auth"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/handlers"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/metrics"
	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

func newTestRouter(t *testing.T, validator *auth.TokenValidator, origins []string, checks map[string]handlers.Pinger) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	cfg := RouterConfig{
		// nothing below reaches the database
		Services:     NewServices(ServiceDeps{Clock: clock.Fixed(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))}),
		Logger:       logger.NewNop(),
		Metrics:      m,
		CORSOrigins:  origins,
		HealthChecks: checks,
		Mode:         gin.TestMode,
	}
	if validator != nil {
		cfg.JWTValidator = validator
	}
	return NewRouter(cfg), m
}

func request(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	checks := map[string]handlers.Pinger{
		"postgres": handlers.PingFunc(func(context.Context) error { return nil }),
		"redis":    handlers.PingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
	}
	r, _ := newTestRouter(t, nil, nil, checks)

	w := request(r, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"postgres":"healthy"`)
	assert.Contains(t, w.Body.String(), "unhealthy: dial tcp: refused")
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	r, _ := newTestRouter(t, nil, nil, nil)

	request(r, http.MethodGet, "/health/live", nil)
	w := request(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `panasonic_http_requests_total{code="200",method="GET",route="/health/live"} 1`)
}

func TestAPIRequiresTokenWhenAuthEnabled(t *testing.T) {
	validator := auth.NewTokenValidator(auth.DefaultJWTConfig("test-secret"))
	r, _ := newTestRouter(t, validator, nil, nil)

	w := request(r, http.MethodGet, "/api/v1/catalog/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	dealer, err := validator.Sign(auth.Claims{UserID: "u-1", Role: "dealer"}, time.Hour, time.Now())
	require.NoError(t, err)
	w = request(r, http.MethodGet, "/api/v1/catalog/users", map[string]string{"Authorization": "Bearer " + dealer})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// reports validate before touching the database
	w = request(r, http.MethodGet, "/api/v1/reports/top-products?metric=bogus",
		map[string]string{"Authorization": "Bearer " + dealer})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS(t *testing.T) {
	r, _ := newTestRouter(t, nil, []string{"https://app.example"}, nil)

	w := request(r, http.MethodOptions, "/api/v1/catalog/categories", map[string]string{
		"Origin":                        "https://app.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = request(r, http.MethodOptions, "/api/v1/catalog/categories", map[string]string{
		"Origin":                        "https://evil.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
