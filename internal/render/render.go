package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"roadIncidents/internal/pipeline"
	"roadIncidents/pkg/e"
)

// ErrorBody is the payload of every non-2xx JSON response. Errors is set
// only for validation failures and groups messages by field.
type ErrorBody struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Error: msg})
}

// Fields writes a 400 listing the given field failures.
func Fields(w http.ResponseWriter, errs map[string][]string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: "validation failed", Errors: errs})
}

// Status maps a service error onto its HTTP status code.
func Status(err error) int {
	var verr *pipeline.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrReferenceNotFound):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, e.ErrConflict), errors.Is(err, e.ErrUniqueViolation):
		return http.StatusConflict
	case errors.Is(err, e.ErrDeadline):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as JSON. Internal failures are logged and answered with an
// opaque message.
func Error(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	code := Status(err)

	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.Any("error", err),
	}
	if code >= http.StatusInternalServerError {
		l.Error("handler error", attrs...)
	} else {
		l.Warn("request rejected", attrs...)
	}

	var verr *pipeline.ValidationError
	switch {
	case errors.As(err, &verr):
		Fields(w, verr.Errors())
	case errors.Is(err, e.ErrCityNotFound):
		Message(w, code, "city not found")
	case errors.Is(err, e.ErrIncidentTypeNotFound):
		Message(w, code, "incident type not found")
	case code == http.StatusBadRequest:
		Message(w, code, "invalid input")
	case code == http.StatusNotFound:
		Message(w, code, "not found")
	case code == http.StatusConflict:
		Message(w, code, "conflict")
	case code == http.StatusGatewayTimeout:
		Message(w, code, "timeout")
	default:
		Message(w, code, "internal error")
	}
}
