package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/jobmate/internal/logger"
)

const internalErrorMessage = "Internal server error"

// Envelope wraps every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ValidationError is a client mistake in the request payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// statusError carries an explicit status and a message that is safe to show.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return e.message
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// fail maps err onto a response. Validation and status errors are shown to
// the caller; anything else is logged and reported as a generic 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr *ValidationError
		sErr *statusError
	)

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, Envelope{Error: vErr.Error()})
	case errors.As(err, &sErr):
		writeJSON(w, sErr.status, Envelope{Error: sErr.message})
	default:
		s.logger.Error("request failed",
			append(logger.RequestFields(middleware.GetReqID(r.Context()), r.URL.Path), zap.Error(err))...,
		)
		writeJSON(w, http.StatusInternalServerError, Envelope{Error: internalErrorMessage})
	}
}
