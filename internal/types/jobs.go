package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateJobRequest represents an employer creating a job posting.
type CreateJobRequest struct {
	Title       string     `json:"title" validate:"required,min=1"`
	Description string     `json:"description" validate:"required,min=1"`
	Location    string     `json:"location" validate:"required,min=1"`
	JobType     string     `json:"job_type" validate:"required,oneof=full_time part_time contract internship remote"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Skills      []string   `json:"skills,omitempty"`

	SalaryMin     *int `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax     *int `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	ExperienceMin *int `json:"experience_min,omitempty" validate:"omitempty,min=0"`
	ExperienceMax *int `json:"experience_max,omitempty" validate:"omitempty,min=0"`

	Draft bool `json:"draft,omitempty"` // create as draft rather than active
}

// UpdateJobRequest carries updatable job fields. Nil fields are left untouched.
type UpdateJobRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string    `json:"description,omitempty" validate:"omitempty,min=1"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,min=1"`
	JobType     *string    `json:"job_type,omitempty" validate:"omitempty,oneof=full_time part_time contract internship remote"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=draft active closed expired"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Skills      []string   `json:"skills,omitempty"`

	SalaryMin     *int `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax     *int `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	ExperienceMin *int `json:"experience_min,omitempty" validate:"omitempty,min=0"`
	ExperienceMax *int `json:"experience_max,omitempty" validate:"omitempty,min=0"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validateRange(r.SalaryMin, r.SalaryMax, r.ExperienceMin, r.ExperienceMax)
}

// Validate validates the UpdateJobRequest using the validator.
func (r *UpdateJobRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validateRange(r.SalaryMin, r.SalaryMax, r.ExperienceMin, r.ExperienceMax)
}

func validateRange(salaryMin, salaryMax, expMin, expMax *int) error {
	if salaryMin != nil && salaryMax != nil && *salaryMin > *salaryMax {
		return &RangeError{Field: "salary"}
	}
	if expMin != nil && expMax != nil && *expMin > *expMax {
		return &RangeError{Field: "experience"}
	}
	return nil
}

// RangeError indicates a min/max pair where min exceeds max.
type RangeError struct {
	Field string
}

func (e *RangeError) Error() string {
	return e.Field + "_min must not exceed " + e.Field + "_max"
}
