package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/catalog"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/payload"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/usecase"
	"github.com/vasapolrittideah/careers-portal/shared/validator"
)

type publicHTTPHandler struct {
	contactUsecase usecase.ContactUsecase
	validator      *validator.Validator
	logger         *zerolog.Logger
}

func (h *publicHTTPHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *publicHTTPHandler) Jobs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Jobs())
}

func (h *publicHTTPHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req payload.ContactRequest
	if !bindJSON(w, r, h.validator, h.logger, &req) {
		return
	}

	if err := h.contactUsecase.SendMessage(r.Context(), usecase.ContactParams{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
