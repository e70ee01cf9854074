package db

import (
	"time"

	"github.com/google/uuid"
)

// Job type constants
const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeRemote     = "remote"
)

// Job status constants
const (
	JobStatusDraft   = "draft"
	JobStatusActive  = "active"
	JobStatusClosed  = "closed"
	JobStatusExpired = "expired"
)

var jobTypes = map[string]bool{
	JobTypeFullTime:   true,
	JobTypePartTime:   true,
	JobTypeContract:   true,
	JobTypeInternship: true,
	JobTypeRemote:     true,
}

var jobStatuses = map[string]bool{
	JobStatusDraft:   true,
	JobStatusActive:  true,
	JobStatusClosed:  true,
	JobStatusExpired: true,
}

// ValidJobType reports whether t is a known job type
func ValidJobType(t string) bool {
	return jobTypes[t]
}

// ValidJobStatus reports whether s is a known job status
func ValidJobStatus(s string) bool {
	return jobStatuses[s]
}

// Job represents a job posting owned by an employer
type Job struct {
	ID         uuid.UUID  `json:"id"`
	EmployerID uuid.UUID  `json:"employer_id"`
	CompanyID  uuid.UUID  `json:"company_id"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description"`         // HTML as submitted
	Excerpt     string `json:"excerpt,omitempty"`   // plain text, derived
	Location    string `json:"location"`
	JobType     string `json:"job_type"`
	Status      string `json:"status"`

	Skills StringArray `json:"skills"`

	SalaryMin     *int `json:"salary_min,omitempty"`
	SalaryMax     *int `json:"salary_max,omitempty"`
	ExperienceMin *int `json:"experience_min,omitempty"`
	ExperienceMax *int `json:"experience_max,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined
	Company *Company `json:"company,omitempty"`
}

// JobCreateInput is used when creating a new job posting
type JobCreateInput struct {
	EmployerID    uuid.UUID
	CompanyID     uuid.UUID
	CategoryID    *uuid.UUID
	Title         string
	Description   string
	Excerpt       string
	Location      string
	JobType       string
	Status        string
	Skills        []string
	SalaryMin     *int
	SalaryMax     *int
	ExperienceMin *int
	ExperienceMax *int
}

// JobUpdateInput carries updatable job fields. Nil fields are left untouched.
type JobUpdateInput struct {
	Title         *string
	Description   *string
	Excerpt       *string
	Location      *string
	JobType       *string
	Status        *string
	Skills        []string
	SalaryMin     *int
	SalaryMax     *int
	ExperienceMin *int
	ExperienceMax *int
	CategoryID    *uuid.UUID
}

// ListJobsOptions filters the public job listing
type ListJobsOptions struct {
	Query      string
	Location   *string
	JobType    *string
	CategoryID *uuid.UUID
	CompanyID  *uuid.UUID
	Status     *string
	Limit      int
	Offset     int
}
