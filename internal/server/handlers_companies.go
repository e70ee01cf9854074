package server

import (
	"net/http"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/types"
)

// handleCreateCompany handles POST /companies (employer)
func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	var req types.CreateCompanyRequest
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

	existing, err := s.companies.GetCompanyByOwner(r.Context(), identity.UserID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if existing != nil {
		errorResponse(w, &ErrConflict{Message: "you already have a company profile"})
		return
	}

	company, err := s.companies.CreateCompany(r.Context(), &db.CompanyCreateInput{
		OwnerID:     identity.UserID,
		Name:        req.Name,
		Website:     req.Website,
		Description: req.Description,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, company)
}

// handleGetCompany handles GET /companies/{id} (public)
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	company, err := s.companies.GetCompanyByID(r.Context(), companyID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if company == nil {
		errorResponse(w, &ErrNotFound{Kind: "company", ID: companyID})
		return
	}
	jsonResponse(w, http.StatusOK, company)
}

// handleReviewCompany handles POST /companies/{id}/reviews (job seeker).
// A second review from the same user replaces their earlier one.
func (s *Server) handleReviewCompany(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		errorResponse(w, &ErrForbidden{Message: "authentication required"})
		return
	}

	companyID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req types.ReviewRequest
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

	company, err := s.companies.GetCompanyByID(r.Context(), companyID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if company == nil {
		errorResponse(w, &ErrNotFound{Kind: "company", ID: companyID})
		return
	}

	review, err := s.companies.UpsertReview(r.Context(), companyID, identity.UserID, req.Rating, req.Comment)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, review)
}

// handleListCompanyReviews handles GET /companies/{id}/reviews (public)
func (s *Server) handleListCompanyReviews(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathUUID(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	reviews, err := s.companies.ListReviewsByCompany(r.Context(), companyID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"reviews": reviews, "total": len(reviews)})
}

// handleListCategories handles GET /categories (public)
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.ListCategories(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"categories": categories})
}
