package types

import (
	"github.com/go-playground/validator/v10"
)

// CreateCompanyRequest represents an employer creating a company profile.
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
	Description string `json:"description,omitempty"`
}

// ReviewRequest represents a job seeker reviewing a company.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

// Validate validates the CreateCompanyRequest using the validator.
func (r *CreateCompanyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ReviewRequest using the validator.
func (r *ReviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
