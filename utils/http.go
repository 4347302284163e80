package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body shape: {"detail": "..."}.
// Details carries per-field information for validation failures.
type ErrorResponse struct {
	Detail  string            `json:"detail"`
	Details map[string]string `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response with the body as-is
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteUnauthorized writes a 401 Unauthorized response
func WriteUnauthorized(w http.ResponseWriter, detail string) error {
	if detail == "" {
		detail = "Not authenticated"
	}
	w.Header().Set("WWW-Authenticate", "Bearer")
	return WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Detail: detail})
}

// WriteUnprocessableEntity writes a 422 response for bodies that failed decoding or validation
func WriteUnprocessableEntity(w http.ResponseWriter, detail string, fields map[string]string) error {
	if detail == "" {
		detail = "Unprocessable Entity"
	}
	return WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Detail:  detail,
		Details: fields,
	})
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, detail string) error {
	if detail == "" {
		detail = "Not Found"
	}
	return WriteJSON(w, http.StatusNotFound, ErrorResponse{Detail: detail})
}

// WriteMethodNotAllowed writes a 405 Method Not Allowed response
func WriteMethodNotAllowed(w http.ResponseWriter) error {
	return WriteJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Detail: "Method Not Allowed"})
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter, detail string) error {
	if detail == "" {
		detail = "Internal Server Error"
	}
	return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: detail})
}
