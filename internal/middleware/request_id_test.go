package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_TraceIDFromConsole(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "console uuid", header: "6f1c2a52-4f7e-4b8e-9a43-0c3e1f6b9d20", keep: true},
		{name: "run scoped id", header: "console-run-1:transactions.7", keep: true},
		{name: "missing", header: ""},
		{name: "header injection", header: "abc\r\nSet-Cookie: ledger_session=x"},
		{name: "spaces", header: "filter by store"},
		{name: "too long", header: strings.Repeat("a", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/transactions/filter", nil)
			if tt.header != "" {
				req.Header.Set(TraceIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			err := RequestID()(func(c echo.Context) error {
				seen = GetTraceID(c)
				return c.NoContent(http.StatusOK)
			})(c)
			require.NoError(t, err)

			echoed := rec.Header().Get(TraceIDHeader)
			assert.Equal(t, seen, echoed)
			if tt.keep {
				assert.Equal(t, tt.header, echoed)
				return
			}
			_, parseErr := uuid.Parse(echoed)
			assert.NoError(t, parseErr, "replacement trace ID should be a UUID")
		})
	}
}

func TestRequestID_IssuesDistinctIDsPerRequest(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/stores", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores", nil))
		id := rec.Header().Get(TraceIDHeader)
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "trace ID %s issued twice", id)
		seen[id] = true
	}
}

func TestGetTraceID_EmptyOutsideMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), httptest.NewRecorder())
	assert.Empty(t, GetTraceID(c))
}
