package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "dev"} {
		l, err := New(Config{Level: "debug", Environment: env, ServiceName: "venue-directory"})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	}
	assert.Equal(t, zapcore.InfoLevel, parseLevel("loud"))
}

func TestMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	mw := Middleware(zap.New(core))

	t.Run("keeps incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/venues", nil)
		req.Header.Set(requestIDHeader, "abc")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var inner *zap.Logger
		require.NoError(t, mw(func(c echo.Context) error {
			inner = FromEcho(c)
			return c.NoContent(http.StatusOK)
		})(c))

		assert.Equal(t, "abc", rec.Header().Get(requestIDHeader))
		assert.NotNil(t, inner)
		entry := logs.TakeAll()[0]
		assert.Equal(t, "HTTP Request", entry.Message)
		assert.Equal(t, "abc", entry.ContextMap()["request_id"])
		assert.EqualValues(t, http.StatusOK, entry.ContextMap()["status"])
	})

	t.Run("renders handler errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, mw(func(echo.Context) error { return errors.New("boom") })(c))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
		assert.EqualValues(t, http.StatusInternalServerError, logs.TakeAll()[0].ContextMap()["status"])
	})
}
