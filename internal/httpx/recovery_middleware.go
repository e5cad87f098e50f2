package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recovery turns a handler panic into a 500 envelope.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					"request_id", RequestIDFrom(r),
					"error", rec,
					"stack", string(debug.Stack()),
				)

				if rw, ok := w.(*statusRecorder); ok && rw.wroteHeader {
					return
				}
				WriteError(w, r, http.StatusInternalServerError, CodeInternal, "An internal error occurred", nil)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
