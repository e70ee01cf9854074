package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
)

// ApplicationStore is the persistence surface the application service needs.
// *db.DB satisfies it; tests supply in-memory fakes.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, input *db.ApplicationCreateInput) (*db.Application, error)
	GetApplicationByID(ctx context.Context, id uuid.UUID) (*db.Application, error)
	ApplicationExists(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string, update db.StatusUpdate) (*db.Application, error)
	UpdateApplicationMetadata(ctx context.Context, id uuid.UUID, meta db.ApplicationMeta) (*db.Application, error)
	ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]db.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID, status *string) ([]db.Application, error)
	CountApplicationsSince(ctx context.Context, userID uuid.UUID, cutoffHours int) (int, error)
}

// JobStore provides job persistence for handlers and the application service.
type JobStore interface {
	CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*db.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, input *db.JobUpdateInput) (*db.Job, error)
	SetJobStatus(ctx context.Context, id uuid.UUID, status string) (*db.Job, error)
	ListJobs(ctx context.Context, opts db.ListJobsOptions) ([]db.Job, int, error)
	ListJobsByEmployer(ctx context.Context, employerID uuid.UUID) ([]db.Job, error)
}

// UserStore provides user persistence for auth and admin handlers.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, role, passwordHash string) (*db.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*db.User, error)
	UpdateUserPreferences(ctx context.Context, id uuid.UUID, notifications, privacy db.JSONMap) (*db.User, error)
	ListUsers(ctx context.Context, opts db.ListUsersOptions) ([]db.User, int, error)
}

// CompanyStore provides company and review persistence.
type CompanyStore interface {
	CreateCompany(ctx context.Context, input *db.CompanyCreateInput) (*db.Company, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (*db.Company, error)
	GetCompanyByOwner(ctx context.Context, ownerID uuid.UUID) (*db.Company, error)
	UpsertReview(ctx context.Context, companyID, userID uuid.UUID, rating int, comment string) (*db.Review, error)
	ListReviewsByCompany(ctx context.Context, companyID uuid.UUID) ([]db.Review, error)
}

// CategoryStore provides category persistence.
type CategoryStore interface {
	CreateCategory(ctx context.Context, name string) (*db.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*db.Category, error)
	ListCategories(ctx context.Context) ([]db.Category, error)
}

// SettingsStore provides system settings persistence for the admin surface.
type SettingsStore interface {
	GetSettings(ctx context.Context) (db.JSONMap, error)
	UpdateSettings(ctx context.Context, settings db.JSONMap) error
}
