package server

import (
	"net/http"

	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/types"
)

// handleSubmitApplication handles POST /jobs/{id}/apply
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
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

	var req types.SubmitApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	app, err := s.applications.SubmitApplication(r.Context(), jobID, identity.UserID, &req)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, app)
}

// handleGetApplication handles GET /applications/{id}
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	appID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	app, err := s.applications.GetApplication(r.Context(), appID, identity.UserID, identity.Role)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, app)
}

// handleListMyApplications handles GET /applications
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	apps, err := s.applications.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"applications": apps, "total": len(apps)})
}

// handleListJobApplications handles GET /jobs/{id}/applications
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
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

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	apps, err := s.applications.ListForJob(r.Context(), jobID, identity.UserID, status)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"applications": apps, "total": len(apps)})
}

// handleChangeApplicationStatus handles PATCH /applications/{id}/status
func (s *Server) handleChangeApplicationStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	appID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req types.ChangeStatusRequest
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

	app, err := s.applications.ChangeStatus(r.Context(), appID, identity.UserID, &req)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, app)
}

// handleScheduleInterview handles POST /applications/{id}/interview
func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	appID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req types.ScheduleInterviewRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	app, err := s.applications.ScheduleInterview(r.Context(), appID, identity.UserID, &req)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, app)
}

// handleWithdrawApplication handles POST /applications/{id}/withdraw
func (s *Server) handleWithdrawApplication(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	appID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req types.WithdrawRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			errorResponse(w, err)
			return
		}
	}

	app, err := s.applications.Withdraw(r.Context(), appID, identity.UserID, &req)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, app)
}
