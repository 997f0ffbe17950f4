package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

func CORS(allowedOrigins []string, log logrus.FieldLogger) func(http.Handler) http.Handler {
	log.WithField("origins", allowedOrigins).Info("cors configured")

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "Stripe-Signature"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
