package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/heartmarshall/scanrate-backend/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing
// according to cfg, including preflight OPTIONS requests.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   cfg.Methods(),
		AllowedHeaders:   cfg.Headers(),
		ExposedHeaders:   []string{RequestIDHeader, "Retry-After"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
