package middlewarex

import (
	"log/slog"
	"net/http"

	"trustrace/pkg/contextx"
	"trustrace/pkg/logx"
)

// Logger puts a request-scoped logger into the context. Must run after
// TraceID.
func Logger(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := base.With(
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldURL, r.URL.Path),
			)

			if traceID, err := contextx.TraceIDFromContext(ctx); err == nil {
				log = log.With(logx.Stringer(logx.FieldTraceID, traceID))
			}

			next.ServeHTTP(w, r.WithContext(contextx.WithLogger(ctx, log)))
		})
	}
}
