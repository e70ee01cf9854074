package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// SubmitApplicationRequest represents a job seeker applying to a job.
// The job ID comes from the URL path.
type SubmitApplicationRequest struct {
	ResumePath  string `json:"resume_path" validate:"required,min=1"`
	CoverLetter string `json:"cover_letter,omitempty"`
}

// ChangeStatusRequest represents an employer-side status transition.
// The extra fields are merged additively into the application; which of them
// is expected depends on the target status by convention, not enforcement.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`

	InterviewDate    *time.Time      `json:"interview_date,omitempty"`
	InterviewNotes   *string         `json:"interview_notes,omitempty"`
	OfferDetails     json.RawMessage `json:"offer_details,omitempty"`
	RejectionReason  *string         `json:"rejection_reason,omitempty"`
	WithdrawalReason *string         `json:"withdrawal_reason,omitempty"`
}

// ScheduleInterviewRequest represents the interview scheduling convenience
// action. Type and location ride in the notification payload only.
type ScheduleInterviewRequest struct {
	Date     time.Time `json:"date" validate:"required"`
	Type     string    `json:"type,omitempty"`
	Location string    `json:"location,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// WithdrawRequest represents the job seeker withdrawing an application.
type WithdrawRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Validate validates the SubmitApplicationRequest using the validator.
func (r *SubmitApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ChangeStatusRequest using the validator.
func (r *ChangeStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScheduleInterviewRequest using the validator.
func (r *ScheduleInterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
