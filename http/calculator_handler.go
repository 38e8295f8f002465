package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"wealth-agent/domain"
	"wealth-agent/service"
)

type CalculatorHandler struct {
	service *service.CalculatorService
	logger  *logrus.Logger
}

func NewCalculatorHandler(s *service.CalculatorService, logger *logrus.Logger) *CalculatorHandler {
	return &CalculatorHandler{service: s, logger: logger}
}

func (h *CalculatorHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/calculators/sip", h.CalculateSIP).Methods(http.MethodPost)
	router.HandleFunc("/calculators/lumpsum", h.CalculateLumpsum).Methods(http.MethodPost)
	router.HandleFunc("/calculators/fd", h.CalculateFD).Methods(http.MethodPost)
	router.HandleFunc("/calculators/loan", h.CalculateLoan).Methods(http.MethodPost)
	router.HandleFunc("/calculators/{kind}/history", h.History).Methods(http.MethodGet)
}

func (h *CalculatorHandler) CalculateSIP(w http.ResponseWriter, r *http.Request) {
	var req domain.SIPInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CalculateSIP(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, newInvestmentResponse(result.InvestedAmount, result.EstimatedReturns, result.TotalValue))
}

func (h *CalculatorHandler) CalculateLumpsum(w http.ResponseWriter, r *http.Request) {
	var req domain.LumpsumInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CalculateLumpsum(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, newInvestmentResponse(result.InvestedAmount, result.EstimatedReturns, result.TotalValue))
}

func (h *CalculatorHandler) CalculateFD(w http.ResponseWriter, r *http.Request) {
	var req domain.FDInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CalculateFD(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, newInvestmentResponse(result.InvestedAmount, result.EstimatedReturns, result.TotalValue))
}

func (h *CalculatorHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var req domain.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, loanResponse{
		MonthlyPayment: money(result.MonthlyPayment),
		TotalPayment:   money(result.TotalPayment),
		TotalInterest:  money(result.TotalInterest),
	})
}

type historyEntry struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

func (h *CalculatorHandler) History(w http.ResponseWriter, r *http.Request) {
	kind := domain.CalculationKind(mux.Vars(r)["kind"])

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), kind, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, historyEntry{
			ID:        rec.ID,
			Kind:      string(rec.Kind),
			Input:     rec.Input,
			Result:    rec.Result,
			CreatedAt: rec.CreatedAt,
		})
	}
	writeJSON(w, h.logger, http.StatusOK, entries)
}
