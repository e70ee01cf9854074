package types

import (
	"github.com/go-playground/validator/v10"
)

// ModerateUserRequest represents an admin toggling an account's active flag.
type ModerateUserRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// ModerateJobRequest represents an admin forcing a job posting's status.
type ModerateJobRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active closed expired"`
}

// UpdateSettingsRequest represents an admin replacing the system settings bag.
type UpdateSettingsRequest struct {
	Settings map[string]any `json:"settings" validate:"required"`
}

// Validate validates the ModerateUserRequest using the validator.
func (r *ModerateUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ModerateJobRequest using the validator.
func (r *ModerateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateSettingsRequest using the validator.
func (r *UpdateSettingsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
