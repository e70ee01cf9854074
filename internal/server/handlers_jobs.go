package server

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/ingestion"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/types"
)

// handleListJobs handles GET /jobs (public)
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := parseQueryInt(r, "limit", 20, 100)
	page := parseQueryInt(r, "page", 1, 10000)

	active := db.JobStatusActive
	opts := db.ListJobsOptions{
		Query:  q.Get("q"),
		Status: &active,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if loc := q.Get("location"); loc != "" {
		opts.Location = &loc
	}
	if jt := q.Get("job_type"); jt != "" {
		if !db.ValidJobType(jt) {
			errorResponse(w, &ErrValidation{Field: "job_type", Message: "unknown job type"})
			return
		}
		opts.JobType = &jt
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errorResponse(w, &ErrValidation{Field: "category_id", Message: "must be a valid UUID"})
			return
		}
		opts.CategoryID = &id
	}
	if raw := q.Get("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errorResponse(w, &ErrValidation{Field: "company_id", Message: "must be a valid UUID"})
			return
		}
		opts.CompanyID = &id
	}

	jobs, total, err := s.jobs.ListJobs(r.Context(), opts)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// handleGetJob handles GET /jobs/{id} (public)
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	job, err := s.jobs.GetJobByID(r.Context(), jobID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if job == nil {
		errorResponse(w, &ErrNotFound{Kind: "job", ID: jobID})
		return
	}
	jsonResponse(w, http.StatusOK, job)
}

// handleCreateJob handles POST /jobs (employer)
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	var req types.CreateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":   "validation failed",
			"details": extractValidationErrors(err),
		})
		return
	}

	company, err := s.companies.GetCompanyByOwner(r.Context(), identity.UserID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if company == nil {
		errorResponse(w, &ErrValidation{Field: "company", Message: "create a company profile before posting jobs"})
		return
	}

	if req.CategoryID != nil {
		cat, err := s.categories.GetCategoryByID(r.Context(), *req.CategoryID)
		if err != nil {
			errorResponse(w, err)
			return
		}
		if cat == nil {
			errorResponse(w, &ErrNotFound{Kind: "category", ID: *req.CategoryID})
			return
		}
	}

	status := db.JobStatusActive
	if req.Draft {
		status = db.JobStatusDraft
	}

	excerpt, err := ingestion.ExtractExcerpt(req.Description, ingestion.DefaultExcerptLength)
	if err != nil {
		log.Printf("failed to extract excerpt: %v", err)
	}

	job, err := s.jobs.CreateJob(r.Context(), &db.JobCreateInput{
		EmployerID:    identity.UserID,
		CompanyID:     company.ID,
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Description:   req.Description,
		Excerpt:       excerpt,
		Location:      req.Location,
		JobType:       req.JobType,
		Status:        status,
		Skills:        req.Skills,
		SalaryMin:     req.SalaryMin,
		SalaryMax:     req.SalaryMax,
		ExperienceMin: req.ExperienceMin,
		ExperienceMax: req.ExperienceMax,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, job)
}

// handleUpdateJob handles PUT /jobs/{id} (owning employer)
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	jobID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req types.UpdateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":   "validation failed",
			"details": extractValidationErrors(err),
		})
		return
	}

	job, err := s.jobs.GetJobByID(r.Context(), jobID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if job == nil {
		errorResponse(w, &ErrNotFound{Kind: "job", ID: jobID})
		return
	}
	if job.EmployerID != identity.UserID && identity.Role != db.RoleAdmin {
		errorResponse(w, &ErrForbidden{Message: "only the job's employer can update it"})
		return
	}

	input := &db.JobUpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		JobType:       req.JobType,
		Status:        req.Status,
		Skills:        req.Skills,
		SalaryMin:     req.SalaryMin,
		SalaryMax:     req.SalaryMax,
		ExperienceMin: req.ExperienceMin,
		ExperienceMax: req.ExperienceMax,
		CategoryID:    req.CategoryID,
	}
	if req.Description != nil {
		excerpt, xerr := ingestion.ExtractExcerpt(*req.Description, ingestion.DefaultExcerptLength)
		if xerr != nil {
			log.Printf("failed to extract excerpt: %v", xerr)
		} else {
			input.Excerpt = &excerpt
		}
	}

	updated, err := s.jobs.UpdateJob(r.Context(), jobID, input)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// handleCloseJob handles DELETE /jobs/{id} (owning employer, soft close)
func (s *Server) handleCloseJob(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	jobID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	job, err := s.jobs.GetJobByID(r.Context(), jobID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if job == nil {
		errorResponse(w, &ErrNotFound{Kind: "job", ID: jobID})
		return
	}
	if job.EmployerID != identity.UserID && identity.Role != db.RoleAdmin {
		errorResponse(w, &ErrForbidden{Message: "only the job's employer can close it"})
		return
	}

	closed, err := s.jobs.SetJobStatus(r.Context(), jobID, db.JobStatusClosed)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, closed)
}

// handleListMyJobs handles GET /employer/jobs
func (s *Server) handleListMyJobs(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	jobs, err := s.jobs.ListJobsByEmployer(r.Context(), identity.UserID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "total": len(jobs)})
}
