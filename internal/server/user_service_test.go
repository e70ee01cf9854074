package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/types"
)

func newTestUserService(t *testing.T, store *fakeStore) *UserService {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-at-least-32-characters-long")
	t.Setenv("BCRYPT_COST", "10")

	jwtConfig, err := config.NewJWTConfig()
	require.NoError(t, err)
	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)

	return NewUserService(store, NewJWTService(jwtConfig), passwordConfig)
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := newTestUserService(t, store)

	resp, err := svc.Register(context.Background(), &types.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery staple",
		Role:     db.RoleJobSeeker,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, db.RoleJobSeeker, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	login, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newTestUserService(t, store)

	req := &types.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery staple",
		Role:     db.RoleEmployer,
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.IsType(t, &ErrEmailAlreadyExists{}, err)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	store := newFakeStore()
	svc := newTestUserService(t, store)

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "correct horse battery staple",
		Role:     db.RoleAdmin,
	})
	require.Error(t, err)
	assert.IsType(t, &ErrValidation{}, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestUserService(t, store)

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery staple",
		Role:     db.RoleJobSeeker,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong password entirely",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	store := newFakeStore()
	svc := newTestUserService(t, store)

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever password",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestLogin_DisabledAccount(t *testing.T) {
	store := newFakeStore()
	svc := newTestUserService(t, store)

	resp, err := svc.Register(context.Background(), &types.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery staple",
		Role:     db.RoleJobSeeker,
	})
	require.NoError(t, err)

	_, err = store.SetUserActive(context.Background(), resp.User.ID, false)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse battery staple",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrAccountDisabled{}, err)
}
