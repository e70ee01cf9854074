package server

import (
	"context"
	"fmt"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/types"
)

// UserService handles account registration and login.
type UserService struct {
	users    UserStore
	jwt      *JWTService
	password *config.PasswordConfig
}

// NewUserService creates a new user service.
func NewUserService(users UserStore, jwt *JWTService, password *config.PasswordConfig) *UserService {
	return &UserService{users: users, jwt: jwt, password: password}
}

// Register creates a new jobseeker or employer account and returns a signed
// token. Admin accounts are provisioned out of band, never via this endpoint.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Field: "request", Message: err.Error()}
	}

	exists, err := s.users.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	hash, err := s.password.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, req.Name, req.Email, req.Role, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.loginResponse(user)
}

// Login verifies credentials and returns the account with a signed token.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Field: "request", Message: err.Error()}
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !s.password.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	if !user.Active {
		return nil, &ErrAccountDisabled{}
	}

	return s.loginResponse(user)
}

func (s *UserService) loginResponse(user *db.User) (*types.LoginResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &types.LoginResponse{
		User: &types.User{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			Active:    user.Active,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
		Token: token,
	}, nil
}
