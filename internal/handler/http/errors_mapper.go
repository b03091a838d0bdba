package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/forkeys/internal/service"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/MKhiriev/forkeys/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrRegistrationNotFound: http.StatusNotFound,
	service.ErrSendingMail:          http.StatusInternalServerError,

	store.ErrRegistrationNotFound: http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// responseFromError builds the body reported for a failed registry call.
// Internal causes are logged, never returned.
func responseFromError(err error) models.StatusResponse {
	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		return models.StatusResponse{Error: msgInvalidEmail}
	case errors.Is(err, service.ErrRegistrationNotFound), errors.Is(err, store.ErrRegistrationNotFound):
		return models.StatusResponse{Status: models.StatusError, Message: msgEmailNotFound}
	case errors.Is(err, service.ErrSendingMail):
		return models.StatusResponse{Status: models.StatusError, Message: msgSendFailed}
	default:
		return models.StatusResponse{Error: msgInternalError}
	}
}
