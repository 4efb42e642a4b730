package httpapi

import (
	"errors"
	"net/http"

	"leaddash/internal/dataset"
)

// APIError is the body of every non-2xx JSON response.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func newAPIError(r *http.Request, code, message string) APIError {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	return e
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, newAPIError(r, code, message))
}

// classify maps a pipeline error to a status and envelope code. A dataset
// that cannot be loaded is always a 500 with code dataset_unavailable.
func classify(err error) (status int, code, message string) {
	var le *dataset.LoadError
	if errors.As(err, &le) {
		return http.StatusInternalServerError, "dataset_unavailable", le.Error()
	}
	return http.StatusInternalServerError, "internal_error", "failed to build the dashboard"
}
