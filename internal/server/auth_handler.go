package server

import (
	"net/http"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/types"
)

// handleRegister handles POST /auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
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

	resp, err := s.users.Register(r.Context(), &req)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, resp)
}

// handleLogin handles POST /auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
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

	resp, err := s.users.Login(r.Context(), &req)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, resp)
}

// handleMe handles GET /auth/me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	user, err := s.userStore.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if user == nil {
		errorResponse(w, &ErrNotFound{Kind: "user", ID: identity.UserID})
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// handleUpdatePreferences handles PATCH /auth/me/preferences
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	var req struct {
		NotificationPreferences db.JSONMap `json:"notification_preferences"`
		PrivacySettings         db.JSONMap `json:"privacy_settings"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	user, err := s.userStore.UpdateUserPreferences(r.Context(), identity.UserID, req.NotificationPreferences, req.PrivacySettings)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if user == nil {
		errorResponse(w, &ErrNotFound{Kind: "user", ID: identity.UserID})
		return
	}
	jsonResponse(w, http.StatusOK, user)
}
