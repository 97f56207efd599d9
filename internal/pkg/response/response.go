package response

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
)

// DecodeJSON decodes JSON from request body into the provided struct
func DecodeJSON(body io.ReadCloser, v interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// Envelope is the wire format every admin route speaks. Mutations carry a
// single item, list routes carry items, failures carry a human-readable
// error string that clients surface verbatim.
type Envelope struct {
	OK    bool        `json:"ok"`
	Item  interface{} `json:"item,omitempty"`
	Items interface{} `json:"items,omitempty"`
	Error string      `json:"error,omitempty"`
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// OK sends a 200 response with a single item
func OK(w http.ResponseWriter, item interface{}) {
	write(w, http.StatusOK, Envelope{OK: true, Item: item})
}

// Created sends a 201 response with the created item
func Created(w http.ResponseWriter, item interface{}) {
	write(w, http.StatusCreated, Envelope{OK: true, Item: item})
}

// Items sends a 200 response with a list of items
func Items(w http.ResponseWriter, items interface{}) {
	write(w, http.StatusOK, Envelope{OK: true, Items: items})
}

// Done sends a 200 response with no payload (deletes)
func Done(w http.ResponseWriter) {
	write(w, http.StatusOK, Envelope{OK: true})
}

// Error sends an error response with the given status
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{OK: false, Error: message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// ValidationError sends a 422 response with field errors joined into a
// single readable string, deterministically ordered.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	Error(w, http.StatusUnprocessableEntity, strings.Join(parts, "; "))
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "An unexpected error occurred")
}
