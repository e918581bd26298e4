package handlers

import (
	"log/slog"
	"net/http"

	"gold-ledger/internal/errors"

	"github.com/labstack/echo/v4"
)

// TraceIDContextKey is where the request ID middleware leaves the trace ID
const TraceIDContextKey = "trace_id"

// SuccessResponse is the envelope of every 2xx answer. The console decodes Data;
// Message is informational.
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty" swaggertype:"object"`
	Message string      `json:"message,omitempty"`
}

func traceID(c echo.Context) string {
	id, _ := c.Get(TraceIDContextKey).(string)
	return id
}

// SendError answers with the status and default message registered for code.
// Handlers never build error bodies themselves.
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	resp := errors.NewErrorResponse(code, traceID(c), opts...)
	return c.JSON(resp.GetHTTPStatus(), resp)
}

// SendSystemError logs err against the trace ID and answers SYSTEM_001. The console
// only ever sees the trace ID, which is enough to find the log line.
func SendSystemError(c echo.Context, err error) error {
	id := traceID(c)
	slog.Error("Request failed",
		"trace_id", id,
		"method", c.Request().Method,
		"route", c.Path(),
		"error", err,
	)
	resp, _ := errors.WrapSystemError(err, id)
	return c.JSON(http.StatusInternalServerError, resp)
}
