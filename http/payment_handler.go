package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"wealth-agent/service"
)

type PaymentHandler struct {
	sessions *service.PaymentSessionManager
	logger   *logrus.Logger
}

func NewPaymentHandler(sessions *service.PaymentSessionManager, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{sessions: sessions, logger: logger}
}

// RegisterRoutes expects router to sit behind AuthMiddleware.
func (h *PaymentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/payments/sessions", h.Open).Methods(http.MethodPost)
	router.HandleFunc("/payments/sessions/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/payments/sessions/{id}/start", h.Start).Methods(http.MethodPost)
	router.HandleFunc("/payments/sessions/{id}/cancel", h.Cancel).Methods(http.MethodPost)
}

// RegisterTeardownRoutes expects router to sit behind TeardownAuthMiddleware.
func (h *PaymentHandler) RegisterTeardownRoutes(router *mux.Router) {
	router.HandleFunc("/payments/sessions/{id}", h.Close).Methods(http.MethodDelete)
}

func (h *PaymentHandler) Open(w http.ResponseWriter, r *http.Request) {
	snapshot := h.sessions.Open(tokenFrom(r))
	h.logger.WithField("payment_session", snapshot.ID).Info("payment session opened")
	writeJSON(w, h.logger, http.StatusCreated, snapshot)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessions.Snapshot(mux.Vars(r)["id"], tokenFrom(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, snapshot)
}

func (h *PaymentHandler) Start(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessions.Start(mux.Vars(r)["id"], tokenFrom(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, snapshot)
}

func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessions.Cancel(mux.Vars(r)["id"], tokenFrom(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, snapshot)
}

func (h *PaymentHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(mux.Vars(r)["id"], tokenFrom(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
