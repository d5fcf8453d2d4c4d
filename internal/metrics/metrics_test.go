package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveMutation(t *testing.T) {
	before := testutil.ToFloat64(MutationCounter.WithLabelValues("venue", "rejected"))
	ObserveMutation("venue", "rejected")
	assert.Equal(t, before+1, testutil.ToFloat64(MutationCounter.WithLabelValues("venue", "rejected")))
}

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, "2xx", statusCategory(201))
	assert.Equal(t, "4xx", statusCategory(409))
	assert.Equal(t, "5xx", statusCategory(503))
	assert.Empty(t, statusCategory(302))
}

func TestMiddlewareAndHandler(t *testing.T) {
	e := echo.New()
	e.Use(NewHTTPMetrics("metrics-test").Middleware())
	e.GET("/v1/shows", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(Handler()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/shows", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(RequestCounter.WithLabelValues("metrics-test", "GET", "/v1/shows", "200")))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}
