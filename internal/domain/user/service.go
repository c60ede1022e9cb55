package user

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"locafest/internal/core/apperror"
	"locafest/pkg/logger"
)

// Service provides account registration and login.
type Service struct {
	repo Repository
	jwt  *JWTService
}

// NewService creates a new user service.
func NewService(repo Repository, jwt *JWTService) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if len(password) < 6 {
		return nil, apperror.NewValidation("password must have at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	u := &User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := u.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "username", username, "role", role)
	return u, nil
}

// Login verifies credentials and returns a signed token.
// Invalid username and invalid password answer identically.
func (s *Service) Login(ctx context.Context, username, password string) (string, *User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", nil, apperror.NewUnauthorized("invalid username or password")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.NewUnauthorized("invalid username or password")
	}

	token, err := s.jwt.Issue(u)
	if err != nil {
		return "", nil, apperror.NewInternal(err)
	}
	return token, u, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
