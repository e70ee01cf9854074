package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"conflict", &ErrConflict{Message: "duplicate"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"account disabled", &ErrAccountDisabled{}, http.StatusForbidden},
		{"forbidden", &ErrForbidden{}, http.StatusForbidden},
		{"not found", &ErrNotFound{Kind: "job", ID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "status", Message: "bad"}, http.StatusBadRequest},
		{"rate limited", &ErrRateLimited{Limit: 50}, http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&ErrEmailAlreadyExists{Email: "a@b.com"}).Error(), "a@b.com")
	assert.Equal(t, "forbidden", (&ErrForbidden{}).Error())
	assert.Equal(t, "no touching", (&ErrForbidden{Message: "no touching"}).Error())
	assert.Contains(t, (&ErrRateLimited{Limit: 50}).Error(), "50")

	id := uuid.New()
	assert.Contains(t, (&ErrNotFound{Kind: "application", ID: id}).Error(), id.String())
}
