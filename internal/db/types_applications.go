package db

import (
	"time"

	"github.com/google/uuid"
)

// Application status constants. An application moves through these as an
// employer reviews it; withdrawn is set by the job seeker.
const (
	StatusSubmitted          = "submitted"
	StatusReviewing          = "reviewing"
	StatusShortlisted        = "shortlisted"
	StatusInterviewScheduled = "interview_scheduled"
	StatusInterviewed        = "interviewed"
	StatusOffered            = "offered"
	StatusRejected           = "rejected"
	StatusWithdrawn          = "withdrawn"
)

// applicationStatuses is the closed set of valid status values.
var applicationStatuses = map[string]bool{
	StatusSubmitted:          true,
	StatusReviewing:          true,
	StatusShortlisted:        true,
	StatusInterviewScheduled: true,
	StatusInterviewed:        true,
	StatusOffered:            true,
	StatusRejected:           true,
	StatusWithdrawn:          true,
}

// ValidStatus reports whether s is one of the eight application statuses.
func ValidStatus(s string) bool {
	return applicationStatuses[s]
}

// ApplicationStatuses returns the valid status values in lifecycle order.
func ApplicationStatuses() []string {
	return []string{
		StatusSubmitted,
		StatusReviewing,
		StatusShortlisted,
		StatusInterviewScheduled,
		StatusInterviewed,
		StatusOffered,
		StatusRejected,
		StatusWithdrawn,
	}
}

// Application represents a job seeker's submission against a job posting
type Application struct {
	ID     uuid.UUID `json:"id"`
	JobID  uuid.UUID `json:"job_id"`
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"`

	ResumePath  string `json:"resume_path"`
	CoverLetter string `json:"cover_letter,omitempty"`

	// Populated as the lifecycle advances; fields are additive and never
	// cleared by later status changes.
	InterviewDate    *time.Time      `json:"interview_date,omitempty"`
	InterviewNotes   *string         `json:"interview_notes,omitempty"`
	OfferDetails     *OfferDetails   `json:"offer_details,omitempty"`
	RejectionReason  *string         `json:"rejection_reason,omitempty"`
	WithdrawalReason *string         `json:"withdrawal_reason,omitempty"`
	Metadata         ApplicationMeta `json:"metadata"`

	AppliedAt   time.Time `json:"applied_at"`
	LastUpdated time.Time `json:"last_updated"`

	// Joined (loaded for job seeker listings)
	Job     *Job     `json:"job,omitempty"`
	Company *Company `json:"company,omitempty"`
}

// OfferDetails is the structured payload recorded when an application
// reaches the offered status.
type OfferDetails struct {
	SalaryAmount int        `json:"salary_amount,omitempty"`
	Currency     string     `json:"currency,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// ApplicationMeta is the denormalized employer-side audit bag. It is
// mutated as a side channel by the employer UI and never validated.
type ApplicationMeta struct {
	Viewed               bool            `json:"viewed"`
	ViewedAt             *time.Time      `json:"viewed_at,omitempty"`
	ResponseTime         *int64          `json:"response_time,omitempty"` // seconds between applied_at and first status change
	CommunicationHistory []Communication `json:"communication_history,omitempty"`
}

// Communication is a single entry in the metadata communication history
type Communication struct {
	At      time.Time `json:"at"`
	Channel string    `json:"channel"`
	Note    string    `json:"note,omitempty"`
}

// StatusUpdate carries the optional fields merged into an application
// alongside a status change. Nil fields are left untouched.
type StatusUpdate struct {
	InterviewDate    *time.Time
	InterviewNotes   *string
	OfferDetails     *OfferDetails
	RejectionReason  *string
	WithdrawalReason *string
}

// ApplicationCreateInput is used when creating a new application
type ApplicationCreateInput struct {
	JobID       uuid.UUID
	UserID      uuid.UUID
	ResumePath  string
	CoverLetter string
}
