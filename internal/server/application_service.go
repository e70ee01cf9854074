package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/notify"
	"github.com/jonathan/job-board/internal/schemas"
	"github.com/jonathan/job-board/internal/types"
)

// ApplicationService owns the application lifecycle: submission, status
// transitions, interview scheduling and withdrawal. Status changes merge
// their extra fields additively; earlier lifecycle data is never cleared.
type ApplicationService struct {
	apps       ApplicationStore
	jobs       JobStore
	users      UserStore
	limiter    *AppLimiter
	dispatcher notify.Dispatcher
}

// NewApplicationService creates a new application service.
func NewApplicationService(apps ApplicationStore, jobs JobStore, users UserStore, limiter *AppLimiter, dispatcher notify.Dispatcher) *ApplicationService {
	return &ApplicationService{
		apps:       apps,
		jobs:       jobs,
		users:      users,
		limiter:    limiter,
		dispatcher: dispatcher,
	}
}

// SubmitApplication creates a new application in the submitted status and
// notifies both the applicant and the job's employer.
func (s *ApplicationService) SubmitApplication(ctx context.Context, jobID, userID uuid.UUID, req *types.SubmitApplicationRequest) (*db.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Field: "resume_path", Message: "resume_path is required"}
	}

	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, &ErrNotFound{Kind: "job", ID: jobID}
	}
	if job.Status != db.JobStatusActive {
		return nil, &ErrValidation{Field: "job_id", Message: "job is not accepting applications"}
	}

	applicant, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if applicant == nil {
		return nil, &ErrNotFound{Kind: "user", ID: userID}
	}

	exists, err := s.apps.ApplicationExists(ctx, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if exists {
		return nil, &ErrConflict{Message: "you have already applied to this job"}
	}

	allowed, err := s.limiter.Allow(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check application limit: %w", err)
	}
	if !allowed {
		return nil, &ErrRateLimited{Limit: s.limiter.limit}
	}

	app, err := s.apps.CreateApplication(ctx, &db.ApplicationCreateInput{
		JobID:       jobID,
		UserID:      userID,
		ResumePath:  req.ResumePath,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.notifySubmission(ctx, app, job, applicant)
	return app, nil
}

// ChangeStatus transitions an application to newStatus and merges the
// request's extra fields into it. Any current status may move to any valid
// status; only the enum membership is enforced.
func (s *ApplicationService) ChangeStatus(ctx context.Context, appID, employerID uuid.UUID, req *types.ChangeStatusRequest) (*db.Application, error) {
	return s.changeStatus(ctx, appID, employerID, req, nil)
}

// changeStatus is ChangeStatus plus extra notification payload fields that are
// not stored on the record, such as interview type and location.
func (s *ApplicationService) changeStatus(ctx context.Context, appID, employerID uuid.UUID, req *types.ChangeStatusRequest, extra map[string]any) (*db.Application, error) {
	if !db.ValidStatus(req.Status) {
		return nil, &ErrValidation{
			Field:   "status",
			Message: fmt.Sprintf("invalid status %q, must be one of: %s", req.Status, strings.Join(db.ApplicationStatuses(), ", ")),
		}
	}

	app, err := s.apps.GetApplicationByID(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if app == nil {
		return nil, &ErrNotFound{Kind: "application", ID: appID}
	}

	job, err := s.jobs.GetJobByID(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil || job.EmployerID != employerID {
		return nil, &ErrForbidden{Message: "only the job's employer can update this application"}
	}

	update := db.StatusUpdate{
		InterviewDate:    req.InterviewDate,
		InterviewNotes:   req.InterviewNotes,
		RejectionReason:  req.RejectionReason,
		WithdrawalReason: req.WithdrawalReason,
	}
	if len(req.OfferDetails) > 0 {
		if err := schemas.ValidateOfferDetails(req.OfferDetails); err != nil {
			return nil, &ErrValidation{Field: "offer_details", Message: err.Error()}
		}
		var offer db.OfferDetails
		if err := json.Unmarshal(req.OfferDetails, &offer); err != nil {
			return nil, &ErrValidation{Field: "offer_details", Message: "malformed offer details"}
		}
		update.OfferDetails = &offer
	}

	updated, err := s.apps.UpdateApplicationStatus(ctx, appID, req.Status, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	s.recordFirstResponse(ctx, app, updated)
	s.notifyStatusChange(ctx, updated, job, extra)
	return updated, nil
}

// ScheduleInterview is a convenience wrapper over ChangeStatus that moves
// the application to interview_scheduled. Interview type and location ride
// only in the notification payload; the stored record keeps date and notes.
func (s *ApplicationService) ScheduleInterview(ctx context.Context, appID, employerID uuid.UUID, req *types.ScheduleInterviewRequest) (*db.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Field: "date", Message: "interview date is required"}
	}

	change := &types.ChangeStatusRequest{
		Status:        db.StatusInterviewScheduled,
		InterviewDate: &req.Date,
	}
	if req.Notes != "" {
		change.InterviewNotes = &req.Notes
	}

	extra := map[string]any{}
	if req.Type != "" {
		extra["type"] = req.Type
	}
	if req.Location != "" {
		extra["location"] = req.Location
	}
	return s.changeStatus(ctx, appID, employerID, change, extra)
}

// Withdraw lets the owning job seeker withdraw their application. Previously
// recorded lifecycle fields stay on the record.
func (s *ApplicationService) Withdraw(ctx context.Context, appID, userID uuid.UUID, req *types.WithdrawRequest) (*db.Application, error) {
	app, err := s.apps.GetApplicationByID(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if app == nil {
		return nil, &ErrNotFound{Kind: "application", ID: appID}
	}
	if app.UserID != userID {
		return nil, &ErrForbidden{Message: "only the applicant can withdraw this application"}
	}

	update := db.StatusUpdate{}
	if req != nil && req.Reason != "" {
		update.WithdrawalReason = &req.Reason
	}

	updated, err := s.apps.UpdateApplicationStatus(ctx, appID, db.StatusWithdrawn, update)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw application: %w", err)
	}

	if job, jerr := s.jobs.GetJobByID(ctx, app.JobID); jerr == nil && job != nil {
		s.notifyStatusChange(ctx, updated, job, nil)
	}
	return updated, nil
}

// GetApplication loads a single application, restricted to its applicant,
// the job's employer, or an admin.
func (s *ApplicationService) GetApplication(ctx context.Context, appID, callerID uuid.UUID, callerRole string) (*db.Application, error) {
	app, err := s.apps.GetApplicationByID(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if app == nil {
		return nil, &ErrNotFound{Kind: "application", ID: appID}
	}
	if callerRole == db.RoleAdmin || app.UserID == callerID {
		return app, nil
	}

	job, err := s.jobs.GetJobByID(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil || job.EmployerID != callerID {
		return nil, &ErrForbidden{}
	}
	return app, nil
}

// ListForUser returns the caller's own applications with job context.
func (s *ApplicationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]db.Application, error) {
	apps, err := s.apps.ListApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListForJob returns a job's applications to its owning employer, optionally
// filtered by status. It also marks unviewed applications as viewed.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID, employerID uuid.UUID, status *string) ([]db.Application, error) {
	if status != nil && !db.ValidStatus(*status) {
		return nil, &ErrValidation{Field: "status", Message: fmt.Sprintf("invalid status %q", *status)}
	}

	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, &ErrNotFound{Kind: "job", ID: jobID}
	}
	if job.EmployerID != employerID {
		return nil, &ErrForbidden{Message: "only the job's employer can view its applications"}
	}

	apps, err := s.apps.ListApplicationsByJob(ctx, jobID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	now := time.Now()
	for i := range apps {
		if apps[i].Metadata.Viewed {
			continue
		}
		meta := apps[i].Metadata
		meta.Viewed = true
		meta.ViewedAt = &now
		if _, err := s.apps.UpdateApplicationMetadata(ctx, apps[i].ID, meta); err == nil {
			apps[i].Metadata = meta
		}
	}
	return apps, nil
}

// recordFirstResponse stamps response_time on the first employer-initiated
// status change. Metadata writes are best-effort.
func (s *ApplicationService) recordFirstResponse(ctx context.Context, before, after *db.Application) {
	if before.Metadata.ResponseTime != nil || before.Status != db.StatusSubmitted {
		return
	}
	seconds := int64(after.LastUpdated.Sub(before.AppliedAt).Seconds())
	meta := after.Metadata
	meta.ResponseTime = &seconds
	if updated, err := s.apps.UpdateApplicationMetadata(ctx, after.ID, meta); err == nil && updated != nil {
		after.Metadata = updated.Metadata
	}
}

func (s *ApplicationService) notifySubmission(ctx context.Context, app *db.Application, job *db.Job, applicant *db.User) {
	notifications := []notify.Notification{{
		Recipient: applicant.Email,
		Template:  notify.TemplateApplicationSubmitted,
		Payload: map[string]any{
			"applicant_name": applicant.Name,
			"job_title":      job.Title,
		},
	}}
	if employer, err := s.users.GetUserByID(ctx, job.EmployerID); err == nil && employer != nil {
		notifications = append(notifications, notify.Notification{
			Recipient: employer.Email,
			Template:  notify.TemplateNewApplication,
			Payload: map[string]any{
				"applicant_name": applicant.Name,
				"job_title":      job.Title,
				"application_id": app.ID.String(),
			},
		})
	}
	notify.Send(s.dispatcher, notifications...)
}

// notifyStatusChange tells the applicant about the new status. Interview
// details recorded on the application ride along when present; extra carries
// notification-only fields from the caller.
func (s *ApplicationService) notifyStatusChange(ctx context.Context, app *db.Application, job *db.Job, extra map[string]any) {
	applicant, err := s.users.GetUserByID(ctx, app.UserID)
	if err != nil || applicant == nil {
		return
	}
	payload := map[string]any{
		"job_title": job.Title,
		"status":    app.Status,
	}
	if app.InterviewDate != nil {
		payload["interview_date"] = app.InterviewDate.Format(time.RFC3339)
	}
	if app.InterviewNotes != nil {
		payload["interview_notes"] = *app.InterviewNotes
	}
	for k, v := range extra {
		payload[k] = v
	}
	notify.Send(s.dispatcher, notify.Notification{
		Recipient: applicant.Email,
		Template:  notify.TemplateApplicationUpdate,
		Payload:   payload,
	})
}
