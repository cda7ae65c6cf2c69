package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marves/pcpartstore/pkg/logger"
)

func TestRequestLogger_StoresEnrichedLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logger.NewWithWriter("test", "info", &buf)

	var seen *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.FromContext(r.Context())
		seen.Info("inside handler")
	})

	h := RequestLogging(base)(RequestLogger(base)(next))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-ID", "sess-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, seen)

	// The handler's log line carries correlation_id and session_id.
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var handlerLine map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &handlerLine))
	assert.Equal(t, "sess-42", handlerLine["session_id"])
	assert.NotEmpty(t, handlerLine["correlation_id"])
}

func TestRequestLogging_SetsCorrelationHeader(t *testing.T) {
	var buf bytes.Buffer
	base := logger.NewWithWriter("test", "info", &buf)

	h := RequestLogging(base)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestRequestLogging_ReusesIncomingCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	base := logger.NewWithWriter("test", "info", &buf)

	h := RequestLogging(base)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("X-Correlation-ID", "corr-fixed")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "corr-fixed", rec.Header().Get("X-Correlation-ID"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "corr-fixed", line["correlation_id"])
}
