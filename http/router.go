package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Calculator *CalculatorHandler
	Profile    *ProfileHandler
	Payment    *PaymentHandler
	Auth       *AuthHandler
}

// NewRouter mounts every handler behind the rate limiter. Profile and payment
// routes also require a live bearer token; closing a payment session only needs
// the token that opened it, expired or not.
func NewRouter(h Handlers, limiter *RateLimiter, logger *logrus.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RateLimitMiddleware(limiter, logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	h.Calculator.RegisterRoutes(router)
	h.Auth.RegisterRoutes(router)

	teardown := router.NewRoute().Subrouter()
	teardown.Use(TeardownAuthMiddleware(logger))
	h.Payment.RegisterTeardownRoutes(teardown)

	protected := router.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(logger, time.Now))
	h.Profile.RegisterRoutes(protected)
	h.Payment.RegisterRoutes(protected)

	return router
}
