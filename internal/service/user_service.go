package service

import (
	"context"
	"net/mail"
	"strings"

	"restaurant-ops/internal/domain"
)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Create(ctx context.Context, user *domain.UserAccount) error {
	user.FullName = strings.TrimSpace(user.FullName)
	user.Phone = strings.TrimSpace(user.Phone)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if user.FullName == "" || user.Phone == "" {
		return domain.Invalid(domain.ErrInvalidUser, "full name and phone are required")
	}
	addr, err := mail.ParseAddress(user.Email)
	if err != nil {
		return domain.Invalid(domain.ErrInvalidUser, user.Email)
	}
	user.Email = addr.Address
	role, err := domain.ParseUserRole(string(user.Role))
	if err != nil {
		return err
	}
	user.Role = role
	return s.repo.CreateUser(ctx, user)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.UserAccount, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user", id)
	}
	return user, nil
}

func (s *UserService) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.UserAccount, error) {
	return s.repo.ListUsersByRole(ctx, role)
}

var _ UserServiceInterface = (*UserService)(nil)
