package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"wealth-agent/auth"
)

type contextKey string

const tokenKey contextKey = "bearer-token"

// AuthMiddleware requires a bearer token that has not visibly expired and puts
// it on the request context for forwarding to the provider.
func AuthMiddleware(logger *logrus.Logger, now func() time.Time) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r)
			if err == nil {
				err = auth.CheckToken(token, now())
			}
			if err != nil {
				logger.WithError(err).WithField("path", r.URL.Path).Debug("rejected request")
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TeardownAuthMiddleware requires a bearer token but accepts expired ones, so a
// client can still release what it opened after its session lapsed. Handlers
// behind it must match the token against what it owns.
func TeardownAuthMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r)
			if err != nil {
				logger.WithError(err).WithField("path", r.URL.Path).Debug("rejected teardown")
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFrom(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}
