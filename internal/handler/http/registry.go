package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/utils"
	"github.com/MKhiriev/forkeys/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeResponse(w, r, models.StatusResponse{Error: msgEmailRequired}, http.StatusBadRequest)
		return
	}

	if err := h.services.RegistryService.Register(ctx, req); err != nil {
		status := statusFromError(err)
		log.Err(err).Int("status", status).Msg("registration failed")
		writeResponse(w, r, responseFromError(err), status)
		return
	}

	writeResponse(w, r, models.StatusResponse{Status: models.StatusSuccess}, http.StatusOK)
}

func (h *Handler) sendRecoveryEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RecoveryEmailRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeResponse(w, r, models.StatusResponse{Error: msgEmailRequired}, http.StatusBadRequest)
		return
	}

	if err := h.services.RegistryService.SendRecoveryEmail(ctx, req); err != nil {
		status := statusFromError(err)
		log.Err(err).Int("status", status).Msg("recovery email failed")
		writeResponse(w, r, responseFromError(err), status)
		return
	}

	writeResponse(w, r, models.StatusResponse{Status: models.StatusSuccess, Message: msgRecoverySent}, http.StatusOK)
}

func (h *Handler) emailTest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RecoveryEmailRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeResponse(w, r, models.StatusResponse{Error: msgNeedEmail}, http.StatusBadRequest)
		return
	}

	if err := h.services.RegistryService.SendTestEmail(ctx, req); err != nil {
		status := statusFromError(err)
		log.Err(err).Int("status", status).Msg("test email failed")
		writeResponse(w, r, responseFromError(err), status)
		return
	}

	writeResponse(w, r, models.StatusResponse{Status: models.StatusSuccess, Message: msgEmailSent}, http.StatusOK)
}

// decodeRequest reads the JSON body into dst. An empty body leaves dst
// zero so that the missing e-mail is reported instead.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := utils.ReadJSON(r, dst)
	if err == nil || errors.Is(err, utils.ErrEmptyBody) {
		return true
	}

	logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
	writeResponse(w, r, models.StatusResponse{Error: msgInvalidJSON}, http.StatusBadRequest)
	return false
}

func writeResponse(w http.ResponseWriter, r *http.Request, body any, status int) {
	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
