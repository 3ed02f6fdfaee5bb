package middleware

import (
	"net/http"
	"time"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/logger"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware assigns each request an id and logs it structured on
// completion.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		operatorID, _ := utils.GetOperatorIDFromContext(r.Context())

		logger.FromCtx(ctx).Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.statusCode),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_ip", r.RemoteAddr),
			zap.String("operator_id", operatorID),
		)
	})
}
