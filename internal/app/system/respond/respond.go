// Package respond centralizes JSON response shaping for the API.
//
// Every handler translates its outcome into one of the writers here, so the
// error body shape ({"error": ..., "details": ...}) and the status taxonomy
// stay identical across features:
//
//	401 authentication (missing/invalid/expired token, bad credentials)
//	403 authorization (role or tenant mismatch made explicit)
//	404 not found (including records outside the caller's organization)
//	400 validation and duplicate natural keys
//	500 unexpected failure (generic message; the cause is logged server-side)
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the wire shape of every non-2xx response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes an error body with the given status code.
func Error(w http.ResponseWriter, status int, errMsg, details string) {
	JSON(w, status, ErrorBody{Error: errMsg, Details: details})
}

// Unauthorized writes a 401 authentication error.
func Unauthorized(w http.ResponseWriter, errMsg, details string) {
	Error(w, http.StatusUnauthorized, errMsg, details)
}

// Forbidden writes a 403 authorization error.
func Forbidden(w http.ResponseWriter, errMsg, details string) {
	Error(w, http.StatusForbidden, errMsg, details)
}

// NotFound writes a 404. Records belonging to another organization are
// reported through this writer, never as 403, so existence is not revealed.
func NotFound(w http.ResponseWriter, errMsg, details string) {
	Error(w, http.StatusNotFound, errMsg, details)
}

// BadRequest writes a 400 validation or duplicate error.
func BadRequest(w http.ResponseWriter, errMsg, details string) {
	Error(w, http.StatusBadRequest, errMsg, details)
}

// ServerError writes a generic 500. The concrete cause must be logged by the
// caller, not put on the wire.
func ServerError(w http.ResponseWriter, details string) {
	Error(w, http.StatusInternalServerError, "Server Error", details)
}
