package middleware

import (
	"net/http"
	"reports/src/utils"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Logger stores a request-scoped entry in the context and logs each response.
func Logger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			entry := logger.WithFields(logrus.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"remote_ip":  req.RemoteAddr,
				"request_id": chimiddleware.GetReqID(req.Context()),
			})

			ctx := utils.WithLogger(req.Context(), entry)
			ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, req.WithContext(ctx))

			entry.WithFields(logrus.Fields{
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info("request completed")
		})
	}
}
