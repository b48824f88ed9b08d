package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware applying CORS headers for the configured origins.
// A lone "*" allows any origin without credentials; explicit origins allow credentials.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowCredentials := true
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           3600,
	})
}
