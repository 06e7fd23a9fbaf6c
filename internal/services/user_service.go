package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type UserService struct {
	Users repos.UserStore
}

func NewUserService(users repos.UserStore) *UserService {
	return &UserService{Users: users}
}

// List never exposes passwords.
func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	us, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(us))
	for _, u := range us {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id int64, role string) (domain.PublicUser, error) {
	u, err := s.Users.UpdateUserRole(ctx, id, role)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.Users.DeleteUser(ctx, id)
}
