// Package rest contains the JSON HTTP handlers. Business endpoints answer
// with a {code, message, data} envelope over HTTP 200; the mini-program
// client switches on the envelope code, not the transport status.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kevin930119/CSPQWServer/internal/domain"
)

// Envelope codes mirror HTTP semantics without using the status line.
const (
	codeOK         = 0
	codeBadRequest = 400
	codeNotFound   = 404
	codeInternal   = 500
)

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Code: codeOK, Data: data})
}

func writeOKMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Code: codeOK, Message: message, Data: data})
}

func writeFail(w http.ResponseWriter, code int, message string) {
	writeJSON(w, http.StatusOK, envelope{Code: code, Message: message})
}

// handleError maps a service error onto an envelope code. Unrecognized
// errors are logged and reported as an opaque 500.
func handleError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeFail(w, codeBadRequest, ve.Error())
	case errors.Is(err, domain.ErrValidation):
		writeFail(w, codeBadRequest, "invalid request")
	case errors.Is(err, domain.ErrNotFound):
		writeFail(w, codeNotFound, "not found")
	default:
		log.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		writeFail(w, codeInternal, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
