package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"wealth-agent/service"
)

type ProfileHandler struct {
	service *service.ProfileService
	logger  *logrus.Logger
}

func NewProfileHandler(s *service.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{service: s, logger: logger}
}

// RegisterRoutes expects router to sit behind AuthMiddleware.
func (h *ProfileHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/profile/status", h.Status).Methods(http.MethodGet)
	router.HandleFunc("/profile/next-step", h.NextStep).Methods(http.MethodGet)
	router.HandleFunc("/profile/nominee-2fa", h.Nominee2FA).Methods(http.MethodPost)
}

func (h *ProfileHandler) Status(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context(), tokenFrom(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, overview)
}

func (h *ProfileHandler) NextStep(w http.ResponseWriter, r *http.Request) {
	next, err := h.service.NextAction(r.Context(), tokenFrom(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, next)
}

func (h *ProfileHandler) Nominee2FA(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CheckNominee2FA(r.Context(), tokenFrom(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
