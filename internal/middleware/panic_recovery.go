package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"gold-ledger/internal/errors"
	"gold-ledger/internal/handlers"

	"github.com/labstack/echo/v4"
)

// PanicRecovery turns a panicking handler into SYSTEM_001. The stack goes to
// the log under the request's trace ID, never to the console.
func PanicRecovery(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				logger.Error("Panic recovered",
					"trace_id", GetTraceID(c),
					"panic", fmt.Sprintf("%v", r),
					"route", c.Path(),
					"method", c.Request().Method,
					"stack_trace", string(debug.Stack()),
				)
				if c.Response().Committed {
					return
				}
				err = handlers.SendError(c, errors.SystemInternalError)
			}()

			return next(c)
		}
	}
}
