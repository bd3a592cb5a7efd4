package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/response"
	"github.com/ulule/limiter/v3"
)

// RateLimit limits requests per client IP.
func RateLimit(limiterInstance *limiter.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limiterInstance.GetIPKey(r)

			context, err := limiterInstance.Get(r.Context(), key)
			if err != nil {
				logger.Error("failed to get rate limit context", "ip", key, "error", err)
				response.InternalServerError(w, "Internal server error during rate limit check")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(context.Reset, 10))

			if context.Reached {
				logger.Warn("rate limit exceeded", "ip", key, "limit", context.Limit, "path", r.URL.Path)
				response.TooManyRequests(w, "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
