package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/server/middleware"
)

func newTestServer(store *fakeStore) *Server {
	return &Server{
		applications: NewApplicationService(store, store, store, nil, nil),
		userStore:    store,
		jobs:         store,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestHandleSubmitApplication(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)

	employer := store.addUser(db.RoleEmployer)
	seeker := store.addUser(db.RoleJobSeeker)
	job := store.addJob(employer.ID, db.JobStatusActive)

	body := jsonBody(t, map[string]string{"resume_path": "resumes/cv.pdf"})
	req := httptest.NewRequest("POST", fmt.Sprintf("/jobs/%s/apply", job.ID), body)
	req.SetPathValue("id", job.ID.String())
	req = middleware.WithIdentity(req, middleware.Identity{UserID: seeker.ID, Role: db.RoleJobSeeker})

	rec := httptest.NewRecorder()
	srv.handleSubmitApplication(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var app db.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, db.StatusSubmitted, app.Status)
	assert.Equal(t, job.ID, app.JobID)
	assert.Equal(t, seeker.ID, app.UserID)
}

func TestHandleSubmitApplication_NoIdentity(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)

	req := httptest.NewRequest("POST", "/jobs/abc/applications", jsonBody(t, map[string]string{"resume_path": "x"}))
	rec := httptest.NewRecorder()
	srv.handleSubmitApplication(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleSubmitApplication_BadJobID(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	seeker := store.addUser(db.RoleJobSeeker)

	req := httptest.NewRequest("POST", "/jobs/not-a-uuid/applications", jsonBody(t, map[string]string{"resume_path": "x"}))
	req.SetPathValue("id", "not-a-uuid")
	req = middleware.WithIdentity(req, middleware.Identity{UserID: seeker.ID, Role: db.RoleJobSeeker})

	rec := httptest.NewRecorder()
	srv.handleSubmitApplication(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChangeApplicationStatus(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)

	app, _, _, employer := submitTestApplication(t, srv.applications, store)

	body := jsonBody(t, map[string]string{"status": db.StatusReviewing})
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/applications/%s/status", app.ID), body)
	req.SetPathValue("id", app.ID.String())
	req = middleware.WithIdentity(req, middleware.Identity{UserID: employer.ID, Role: db.RoleEmployer})

	rec := httptest.NewRecorder()
	srv.handleChangeApplicationStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated db.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, db.StatusReviewing, updated.Status)
}

func TestHandleChangeApplicationStatus_InvalidStatus(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)

	app, _, _, employer := submitTestApplication(t, srv.applications, store)

	body := jsonBody(t, map[string]string{"status": "nonsense"})
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/applications/%s/status", app.ID), body)
	req.SetPathValue("id", app.ID.String())
	req = middleware.WithIdentity(req, middleware.Identity{UserID: employer.ID, Role: db.RoleEmployer})

	rec := httptest.NewRecorder()
	srv.handleChangeApplicationStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChangeApplicationStatus_WithdrawalReason(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)

	app, _, _, employer := submitTestApplication(t, srv.applications, store)

	body := jsonBody(t, map[string]string{
		"status":            db.StatusWithdrawn,
		"withdrawal_reason": "accepted another offer",
	})
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/applications/%s/status", app.ID), body)
	req.SetPathValue("id", app.ID.String())
	req = middleware.WithIdentity(req, middleware.Identity{UserID: employer.ID, Role: db.RoleEmployer})

	rec := httptest.NewRecorder()
	srv.handleChangeApplicationStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated db.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, db.StatusWithdrawn, updated.Status)
	require.NotNil(t, updated.WithdrawalReason)
	assert.Equal(t, "accepted another offer", *updated.WithdrawalReason)
}

func TestHandleWithdrawApplication(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)

	app, seeker, _, _ := submitTestApplication(t, srv.applications, store)

	body := jsonBody(t, map[string]string{"reason": "moving abroad"})
	req := httptest.NewRequest("POST", fmt.Sprintf("/applications/%s/withdraw", app.ID), body)
	req.SetPathValue("id", app.ID.String())
	req = middleware.WithIdentity(req, middleware.Identity{UserID: seeker.ID, Role: db.RoleJobSeeker})

	rec := httptest.NewRecorder()
	srv.handleWithdrawApplication(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated db.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, db.StatusWithdrawn, updated.Status)
	require.NotNil(t, updated.WithdrawalReason)
	assert.Equal(t, "moving abroad", *updated.WithdrawalReason)
}

func TestHandleGetApplication_Forbidden(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)

	app, _, _, _ := submitTestApplication(t, srv.applications, store)
	stranger := store.addUser(db.RoleJobSeeker)

	req := httptest.NewRequest("GET", fmt.Sprintf("/applications/%s", app.ID), nil)
	req.SetPathValue("id", app.ID.String())
	req = middleware.WithIdentity(req, middleware.Identity{UserID: stranger.ID, Role: db.RoleJobSeeker})

	rec := httptest.NewRecorder()
	srv.handleGetApplication(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestParseQueryInt(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 20},
		{"limit=5", 5},
		{"limit=0", 20},
		{"limit=-3", 20},
		{"limit=abc", 20},
		{"limit=500", 100},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/jobs?"+tt.query, nil)
		assert.Equal(t, tt.want, parseQueryInt(req, "limit", 20, 100), "query %q", tt.query)
	}
}
