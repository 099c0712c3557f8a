package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"laundry-backend/internal/auth"
	"laundry-backend/internal/models"
	"laundry-backend/internal/store"
)

// ErrInvalidCredentials covers both unknown-username and wrong-password so
// the login surface cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	Store      store.Store
	JWTManager *auth.JWTManager
}

func NewUserService(st store.Store, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Store:      st,
		JWTManager: jwtManager,
	}
}

// Login authenticates a user and returns a JWT token
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Store.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}

// CreateUser creates a new user with a hashed password. A duplicate username
// surfaces as store.ErrUsernameTaken.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, errors.New("username and password are required")
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleWashTech {
		return nil, fmt.Errorf("role must be %q or %q", models.RoleAdmin, models.RoleWashTech)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     strings.TrimSpace(req.FullName),
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
