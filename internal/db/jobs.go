package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, employer_id, company_id, category_id, title, description, excerpt,
	location, job_type, status, skills, salary_min, salary_max, experience_min, experience_max,
	created_at, updated_at`

// CreateJob inserts a new job posting
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (employer_id, company_id, category_id, title, description, excerpt,
			location, job_type, status, skills, salary_min, salary_max, experience_min, experience_max)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING `+jobColumns,
		input.EmployerID, input.CompanyID, input.CategoryID, input.Title, input.Description,
		input.Excerpt, input.Location, input.JobType, input.Status, StringArray(input.Skills),
		input.SalaryMin, input.SalaryMax, input.ExperienceMin, input.ExperienceMax,
	)
	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJobByID retrieves a job posting by its ID with the company joined
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT j.id, j.employer_id, j.company_id, j.category_id, j.title, j.description, j.excerpt,
			j.location, j.job_type, j.status, j.skills, j.salary_min, j.salary_max,
			j.experience_min, j.experience_max, j.created_at, j.updated_at,
			c.id, c.name, c.verified, c.rating
		 FROM jobs j JOIN companies c ON c.id = j.company_id
		 WHERE j.id = $1`,
		id,
	)
	var job Job
	var company Company
	err := row.Scan(
		&job.ID, &job.EmployerID, &job.CompanyID, &job.CategoryID, &job.Title, &job.Description,
		&job.Excerpt, &job.Location, &job.JobType, &job.Status, &job.Skills,
		&job.SalaryMin, &job.SalaryMax, &job.ExperienceMin, &job.ExperienceMax,
		&job.CreatedAt, &job.UpdatedAt,
		&company.ID, &company.Name, &company.Verified, &company.Rating,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	job.Company = &company
	return &job, nil
}

// UpdateJob applies the non-nil fields of input to a job posting
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, input *JobUpdateInput) (*Job, error) {
	var skills any
	if input.Skills != nil {
		skills = StringArray(input.Skills)
	}
	row := db.pool.QueryRow(ctx,
		`UPDATE jobs SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			excerpt = COALESCE($4, excerpt),
			location = COALESCE($5, location),
			job_type = COALESCE($6, job_type),
			status = COALESCE($7, status),
			skills = COALESCE($8, skills),
			salary_min = COALESCE($9, salary_min),
			salary_max = COALESCE($10, salary_max),
			experience_min = COALESCE($11, experience_min),
			experience_max = COALESCE($12, experience_max),
			category_id = COALESCE($13, category_id),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		id, input.Title, input.Description, input.Excerpt, input.Location, input.JobType,
		input.Status, skills, input.SalaryMin, input.SalaryMax,
		input.ExperienceMin, input.ExperienceMax, input.CategoryID,
	)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// SetJobStatus updates only the status of a job posting
func (db *DB) SetJobStatus(ctx context.Context, id uuid.UUID, status string) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING `+jobColumns,
		id, status,
	)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set job status: %w", err)
	}
	return job, nil
}

// ListJobs retrieves job postings matching the options, newest first,
// along with the total matching count for pagination.
func (db *DB) ListJobs(ctx context.Context, opts ListJobsOptions) ([]Job, int, error) {
	var conds []string
	var args []any

	addCond := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if opts.Status != nil {
		addCond("status = $%d", *opts.Status)
	}
	if opts.Location != nil {
		addCond("location ILIKE $%d", "%"+*opts.Location+"%")
	}
	if opts.JobType != nil {
		addCond("job_type = $%d", *opts.JobType)
	}
	if opts.CategoryID != nil {
		addCond("category_id = $%d", *opts.CategoryID)
	}
	if opts.CompanyID != nil {
		addCond("company_id = $%d", *opts.CompanyID)
	}
	if opts.Query != "" {
		addCond("(title ILIKE $%d OR excerpt ILIKE $%[1]d)", "%"+opts.Query+"%")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`SELECT `+jobColumns+` FROM jobs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

// ListJobsByEmployer lists all job postings owned by an employer
func (db *DB) ListJobsByEmployer(ctx context.Context, employerID uuid.UUID) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC`,
		employerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employer jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*Job, error) {
	var job Job
	err := row.Scan(
		&job.ID, &job.EmployerID, &job.CompanyID, &job.CategoryID, &job.Title, &job.Description,
		&job.Excerpt, &job.Location, &job.JobType, &job.Status, &job.Skills,
		&job.SalaryMin, &job.SalaryMax, &job.ExperienceMin, &job.ExperienceMax,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
