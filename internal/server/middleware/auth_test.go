package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClaims implements IdentityGetter for tests.
type stubClaims struct {
	userID uuid.UUID
	role   string
}

func (c *stubClaims) GetUserID() uuid.UUID { return c.userID }
func (c *stubClaims) GetRole() string      { return c.role }

// stubValidator accepts exactly one token string.
type stubValidator struct {
	token  string
	claims *stubClaims
}

func (v *stubValidator) ValidateToken(tokenString string) (IdentityGetter, error) {
	if tokenString != v.token {
		return nil, errors.New("invalid token")
	}
	return v.claims, nil
}

func okHandler(t *testing.T, wantID uuid.UUID, wantRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := GetIdentity(r)
		require.NoError(t, err)
		assert.Equal(t, wantID, identity.UserID)
		assert.Equal(t, wantRole, identity.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{token: "good-token", claims: &stubClaims{userID: userID, role: "employer"}}
	handler := AuthMiddleware(validator)(okHandler(t, userID, "employer"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_CaseInsensitiveBearer(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{token: "good-token", claims: &stubClaims{userID: userID, role: "jobseeker"}}
	handler := AuthMiddleware(validator)(okHandler(t, userID, "jobseeker"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	validator := &stubValidator{token: "good-token", claims: &stubClaims{userID: uuid.New(), role: "jobseeker"}}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "good-token"},
		{"wrong scheme", "Basic good-token"},
		{"invalid token", "Bearer bad-token"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole("employer", "admin")(next)

	tests := []struct {
		name     string
		identity *Identity
		wantCode int
	}{
		{"allowed role", &Identity{UserID: uuid.New(), Role: "employer"}, http.StatusOK},
		{"second allowed role", &Identity{UserID: uuid.New(), Role: "admin"}, http.StatusOK},
		{"forbidden role", &Identity{UserID: uuid.New(), Role: "jobseeker"}, http.StatusForbidden},
		{"no identity", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				req = WithIdentity(req, *tt.identity)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestGetIdentity_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetIdentity(req)
	assert.Error(t, err)
}
