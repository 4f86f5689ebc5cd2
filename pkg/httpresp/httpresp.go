// Package httpresp writes the JSON envelope shared by every handler.
package httpresp

import (
	"encoding/json"
	"net/http"

	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/logger"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// OK sends a successful envelope
func OK(w http.ResponseWriter, status int, message string, data interface{}) {
	JSON(w, status, Response{Success: true, Message: message, Data: data})
}

// BadRequest sends a 400 with message
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, Response{Error: message, Code: string(apperr.KindInvalidInput)})
}

// StatusFor maps an error kind to an HTTP status
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidInput, apperr.KindInvalidRange:
		return http.StatusBadRequest
	case apperr.KindInsufficientStock, apperr.KindInvalidState, apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error maps err to a status and envelope; internal errors are logged and hidden
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)

	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		JSON(w, status, Response{Error: "internal server error", Code: string(apperr.KindInternal)})
		return
	}

	logger.Warn(r.Context()).
		Err(err).
		Str("kind", string(kind)).
		Str("path", r.URL.Path).
		Msg("Request rejected")
	JSON(w, status, Response{Error: err.Error(), Code: string(kind)})
}
