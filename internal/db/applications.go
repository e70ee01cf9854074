package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, job_id, user_id, status, resume_path, cover_letter,
	interview_date, interview_notes, offer_details, rejection_reason, withdrawal_reason,
	metadata, applied_at, last_updated`

// CreateApplication inserts a new application with status 'submitted'.
// applied_at and last_updated start equal.
func (db *DB) CreateApplication(ctx context.Context, input *ApplicationCreateInput) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, user_id, status, resume_path, cover_letter, metadata, applied_at, last_updated)
		 VALUES ($1, $2, 'submitted', $3, $4, '{"viewed": false}', NOW(), NOW())
		 RETURNING `+applicationColumns,
		input.JobID, input.UserID, input.ResumePath, input.CoverLetter,
	)
	app, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// GetApplicationByID retrieves an application by its ID
func (db *DB) GetApplicationByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id,
	)
	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ApplicationExists reports whether the user already applied to the job
func (db *DB) ApplicationExists(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return exists, nil
}

// UpdateApplicationStatus sets the status and merges the optional lifecycle
// fields. Nil fields in update keep their stored values (fields are additive,
// never reset). last_updated uses clock_timestamp() so repeated updates within
// one transaction still advance it.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string, update StatusUpdate) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE applications SET
			status = $2,
			interview_date = COALESCE($3, interview_date),
			interview_notes = COALESCE($4, interview_notes),
			offer_details = COALESCE($5, offer_details),
			rejection_reason = COALESCE($6, rejection_reason),
			withdrawal_reason = COALESCE($7, withdrawal_reason),
			last_updated = GREATEST(clock_timestamp(), last_updated + interval '1 microsecond')
		 WHERE id = $1
		 RETURNING `+applicationColumns,
		id, status, update.InterviewDate, update.InterviewNotes, update.OfferDetails,
		update.RejectionReason, update.WithdrawalReason,
	)
	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return app, nil
}

// UpdateApplicationMetadata replaces the employer-side metadata bag
func (db *DB) UpdateApplicationMetadata(ctx context.Context, id uuid.UUID, meta ApplicationMeta) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE applications SET
			metadata = $2,
			last_updated = GREATEST(clock_timestamp(), last_updated + interval '1 microsecond')
		 WHERE id = $1
		 RETURNING `+applicationColumns,
		id, meta,
	)
	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application metadata: %w", err)
	}
	return app, nil
}

// ListApplicationsByUser lists a job seeker's applications joined with job and
// company summaries, newest first.
func (db *DB) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.user_id, a.status, a.resume_path, a.cover_letter,
			a.interview_date, a.interview_notes, a.offer_details, a.rejection_reason, a.withdrawal_reason,
			a.metadata, a.applied_at, a.last_updated,
			j.id, j.title, j.location, j.job_type, j.status,
			c.id, c.name, c.verified, c.rating
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN companies c ON c.id = j.company_id
		 WHERE a.user_id = $1
		 ORDER BY a.applied_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		var job Job
		var company Company
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.UserID, &app.Status, &app.ResumePath, &app.CoverLetter,
			&app.InterviewDate, &app.InterviewNotes, &app.OfferDetails, &app.RejectionReason, &app.WithdrawalReason,
			&app.Metadata, &app.AppliedAt, &app.LastUpdated,
			&job.ID, &job.Title, &job.Location, &job.JobType, &job.Status,
			&company.ID, &company.Name, &company.Verified, &company.Rating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		app.Job = &job
		app.Company = &company
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ListApplicationsByJob lists applications for a job, newest first, with an
// optional status filter for the employer review screen.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID, status *string) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1`
	args := []any{jobID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY applied_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications for job: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// CountApplicationsSince counts a user's applications submitted after the
// cutoff. Used as the database-backed view of the daily application volume.
func (db *DB) CountApplicationsSince(ctx context.Context, userID uuid.UUID, cutoffHours int) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE user_id = $1 AND applied_at > NOW() - make_interval(hours => $2)`,
		userID, cutoffHours,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

func scanApplication(row pgx.Row) (*Application, error) {
	var app Application
	err := row.Scan(
		&app.ID, &app.JobID, &app.UserID, &app.Status, &app.ResumePath, &app.CoverLetter,
		&app.InterviewDate, &app.InterviewNotes, &app.OfferDetails, &app.RejectionReason, &app.WithdrawalReason,
		&app.Metadata, &app.AppliedAt, &app.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}
