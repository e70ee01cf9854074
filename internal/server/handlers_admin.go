package server

import (
	"net/http"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/types"
)

// handleAdminListUsers handles GET /admin/users
func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := parseQueryInt(r, "limit", 50, 200)
	page := parseQueryInt(r, "page", 1, 10000)

	opts := db.ListUsersOptions{Limit: limit, Offset: (page - 1) * limit}
	if role := q.Get("role"); role != "" {
		if !db.ValidRole(role) {
			errorResponse(w, &ErrValidation{Field: "role", Message: "unknown role"})
			return
		}
		opts.Role = &role
	}
	if raw := q.Get("active"); raw != "" {
		active := raw == "true"
		opts.Active = &active
	}

	users, total, err := s.userStore.ListUsers(r.Context(), opts)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// handleAdminModerateUser handles PATCH /admin/users/{id}
func (s *Server) handleAdminModerateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req types.ModerateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, &ErrValidation{Field: "active", Message: "active is required"})
		return
	}

	user, err := s.userStore.SetUserActive(r.Context(), userID, *req.Active)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if user == nil {
		errorResponse(w, &ErrNotFound{Kind: "user", ID: userID})
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// handleAdminModerateJob handles PATCH /admin/jobs/{id}
func (s *Server) handleAdminModerateJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req types.ModerateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, &ErrValidation{Field: "status", Message: "must be one of: draft, active, closed, expired"})
		return
	}

	job, err := s.jobs.SetJobStatus(r.Context(), jobID, req.Status)
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

// handleAdminCreateCategory handles POST /admin/categories
func (s *Server) handleAdminCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	if req.Name == "" {
		errorResponse(w, &ErrValidation{Field: "name", Message: "name is required"})
		return
	}

	category, err := s.categories.CreateCategory(r.Context(), req.Name)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, category)
}

// handleAdminGetSettings handles GET /admin/settings
func (s *Server) handleAdminGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.GetSettings(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"settings": settings})
}

// handleAdminUpdateSettings handles PUT /admin/settings
func (s *Server) handleAdminUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, &ErrValidation{Field: "settings", Message: "settings is required"})
		return
	}

	if err := s.settings.UpdateSettings(r.Context(), db.JSONMap(req.Settings)); err != nil {
		errorResponse(w, err)
		return
	}

	settings, err := s.settings.GetSettings(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"settings": settings})
}
