package middleware

import (
	"net/http"
	"runtime/debug"

	"mathgen-hq/mathgen/pkg/telemetry/logging"
)

// Recovery recovers from panics in handlers, logs the stack trace and
// returns a JSON 500 response without internal details.
func Recovery(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.ErrorContext(r.Context(), "panic in handler",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					WriteError(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorBody{
						Type:    "internal",
						Code:    "Internal",
						Message: "An internal error occurred. Please try again later.",
					}})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
