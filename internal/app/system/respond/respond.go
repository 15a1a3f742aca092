// internal/app/system/respond/respond.go

// Package respond writes the JSON envelopes used by every API feature and
// maps core faults onto HTTP status codes. Keeping the mapping in one
// place means a fault added to the taxonomy gets one status everywhere.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"go.uber.org/zap"
)

// JSON writes v with the given status. A nil v writes an empty object so
// clients can always decode the body.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		v = struct{}{}
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Msg writes {"msg": text} with HTTP 200.
func Msg(w http.ResponseWriter, text string) {
	JSON(w, http.StatusOK, map[string]string{"msg": text})
}

// StatusFor maps a core fault to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case faults.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, faults.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, faults.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, faults.ErrAlreadyMember),
		errors.Is(err, faults.ErrAlreadyInProject),
		errors.Is(err, faults.ErrLimitExceeded),
		errors.Is(err, faults.ErrRoleResolution):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fault writes the error envelope for a core fault. Unrecognized errors
// become an opaque 500; the caller is expected to have logged them.
func Fault(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "server error"
	}
	JSON(w, status, map[string]string{"error": msg})
}

// ErrorLogger pairs fault writing with structured logging for the cases
// where an operation failed for reasons the client cannot fix.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger wraps a zap logger for handler use.
func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: log}
}

// ServerError logs the underlying error and writes a 500 envelope.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, op string, err error) {
	e.log.Error(op, zap.Error(err), zap.String("path", r.URL.Path), zap.String("method", r.Method))
	JSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
}

// Fault logs at debug level (expected outcomes) and writes the mapped
// envelope; server-class faults are promoted to error level.
func (e *ErrorLogger) Fault(w http.ResponseWriter, r *http.Request, op string, err error) {
	if StatusFor(err) == http.StatusInternalServerError {
		e.ServerError(w, r, op, err)
		return
	}
	e.log.Debug(op, zap.Error(err), zap.String("path", r.URL.Path))
	Fault(w, err)
}
