// Package schemas provides JSON Schema validation for structured application payloads.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// offerDetailsSchema is the versioned schema for the offer_details payload
// recorded when an application reaches the offered status.
const offerDetailsSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "offer_details.v1",
	"type": "object",
	"properties": {
		"salary_amount": {"type": "integer", "minimum": 0},
		"currency": {"type": "string", "minLength": 3, "maxLength": 3},
		"start_date": {"type": "string", "format": "date-time"},
		"notes": {"type": "string"}
	},
	"additionalProperties": false
}`

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateOfferDetails validates a raw offer_details JSON payload against the
// offer_details.v1 schema.
func ValidateOfferDetails(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(offerDetailsSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("offer details are not valid JSON: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
