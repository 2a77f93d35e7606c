// Package httputil centralizes JSON encoding and domain error translation for
// HTTP handlers, keeping the transport layer consistent across domains.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "checkinhub/pkg/domain-errors"
)

var codeStatus = map[dErrors.Code]int{
	dErrors.CodeInvalidInput:       http.StatusBadRequest,
	dErrors.CodeBadRequest:         http.StatusBadRequest,
	dErrors.CodeUnauthorized:       http.StatusUnauthorized,
	dErrors.CodeForbidden:          http.StatusForbidden,
	dErrors.CodeNotFound:           http.StatusNotFound,
	dErrors.CodeConflict:           http.StatusConflict,
	dErrors.CodeInvariantViolation: http.StatusUnprocessableEntity,
	dErrors.CodeUpstream:           http.StatusBadGateway,
	dErrors.CodeUnavailable:        http.StatusServiceUnavailable,
	dErrors.CodeInternal:           http.StatusInternalServerError,
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code dErrors.Code) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into a JSON error envelope.
// Internal errors omit the description so infrastructure details never leak
// to clients; everything else echoes the domain message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	var de *dErrors.Error
	if code != dErrors.CodeInternal && errors.As(err, &de) && de.Message != "" {
		body["error_description"] = de.Message
	}
	WriteJSON(w, ToHTTPStatus(code), body)
}
