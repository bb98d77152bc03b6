package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS wraps the whole engine so preflight requests are answered before
// routing.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		c := cors.New(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedHeaders:   []string{"Authorization", "Content-Type", HeaderRequestID},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			ExposedHeaders:   []string{HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
			AllowCredentials: false,
		})
		return c.Handler(next)
	}
}
