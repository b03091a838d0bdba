package http

import (
	"net/http"
)

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, h.services.AppInfoService.Status(r.Context()), http.StatusOK)
}

func (h *Handler) frontendConfig(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, h.services.AppInfoService.FrontendConfig(r.Context()), http.StatusOK)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}
