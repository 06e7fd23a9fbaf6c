package services

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users repos.UserStore
}

func NewAuthService(users repos.UserStore) *AuthService {
	return &AuthService{Users: users}
}

// Signup stores a new account. The role defaults to "user"; a taken email
// yields repos.ErrConflict.
func (s *AuthService) Signup(ctx context.Context, name, email, password, role string) (domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	return s.Users.CreateUser(ctx, domain.User{Name: name, Email: email, Password: password, Role: role})
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.Users.Authenticate(ctx, email, password)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.User{}, ErrBadCreds
	}
	return u, err
}
