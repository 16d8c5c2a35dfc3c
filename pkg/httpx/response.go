package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/logger"
)

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// RespondJSON writes payload with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, Response{Success: true, Data: data})
}

func RespondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, Response{Success: true, Message: message, Data: data})
}

func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func RespondErrorMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Response{Success: false, Error: message})
}

// RespondError maps the application error taxonomy onto HTTP statuses.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	if v, ok := apperror.IsValidation(err); ok {
		RespondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Validation failed",
			Errors:  v.Fields,
		})
		return
	}
	if nf, ok := apperror.IsNotFound(err); ok {
		RespondErrorMessage(w, http.StatusNotFound, nf.Error())
		return
	}
	if u, ok := apperror.IsUnauthorized(err); ok {
		RespondErrorMessage(w, http.StatusUnauthorized, u.Error())
		return
	}

	logger.Error(r.Context()).
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")
	RespondErrorMessage(w, http.StatusInternalServerError, "Internal server error")
}

// PathID parses the {id} route variable. Routes only match digits, so an id
// of zero or one past the key range names a record that cannot exist.
func PathID(r *http.Request, entity string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.NotFound(entity, 0)
	}
	return uint(id), nil
}

// DecodeJSON decodes the request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.FieldError("non_field_errors", "Invalid request body")
	}
	return nil
}
