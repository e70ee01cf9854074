package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// jsonResponse writes v as a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error body with the status mapped from err.
func errorResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		jsonResponse(w, status, map[string]string{"error": "internal server error"})
		return
	}
	jsonResponse(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "malformed request body"}
	}
	return nil
}

// pathUUID parses the named path segment as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a valid UUID"}
	}
	return id, nil
}

// parseQueryInt reads an integer query parameter, clamped to [1, maxValue],
// falling back to defaultValue when absent or malformed.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultValue
	}
	if n > maxValue {
		return maxValue
	}
	return n
}

// extractValidationErrors flattens validator errors into field/message pairs.
func extractValidationErrors(err error) []map[string]string {
	var out []map[string]string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out = append(out, map[string]string{
				"field":   fe.Field(),
				"message": fe.Tag(),
			})
		}
	}
	return out
}
