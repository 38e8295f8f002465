package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"wealth-agent/auth"
	"wealth-agent/backend"
	"wealth-agent/service"
)

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, logger *logrus.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.WithError(err).Warn("failed to write response")
	}
}

// writeError maps service, auth and provider errors onto HTTP status codes.
func writeError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	var apiErr *backend.APIError
	switch {
	case service.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrSessionClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrTokenExpired):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.As(err, &apiErr):
		logger.WithError(err).Warn("provider request failed")
		if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
			http.Error(w, apiErr.Error(), apiErr.StatusCode)
			return
		}
		http.Error(w, "provider error", http.StatusBadGateway)
	default:
		logger.WithError(err).Error("request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// money renders an amount rounded to two places for display.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

type investmentResponse struct {
	InvestedAmount   string `json:"invested_amount"`
	EstimatedReturns string `json:"estimated_returns"`
	TotalValue       string `json:"total_value"`
}

func newInvestmentResponse(invested, returns, total float64) investmentResponse {
	return investmentResponse{
		InvestedAmount:   money(invested),
		EstimatedReturns: money(returns),
		TotalValue:       money(total),
	}
}

type loanResponse struct {
	MonthlyPayment string `json:"monthly_payment"`
	TotalPayment   string `json:"total_payment"`
	TotalInterest  string `json:"total_interest"`
}
