package service

import (
	"context"
	"fmt"

	"github.com/fleetstack/fleetpoint/internal/auth"
	"github.com/fleetstack/fleetpoint/internal/domain"
)

// UserService handles operator account management. All of its
// operations are restricted to the administrator at the route level.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create registers an operator account with a hashed password.
func (s *UserService) Create(ctx context.Context, u *domain.User, password string) error {
	if u.Username == "" {
		return domain.Validationf("username is required")
	}
	if password == "" {
		return domain.Validationf("password is required")
	}
	if u.Name == "" {
		return domain.Validationf("name is required")
	}
	if u.Email == "" {
		return domain.Validationf("email is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = hash
	return s.users.Create(ctx, u)
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update saves the account fields. A non-empty newPassword replaces the
// stored hash; an empty one keeps it.
func (s *UserService) Update(ctx context.Context, u *domain.User, newPassword string) error {
	if u.Username == "" {
		return domain.Validationf("username is required")
	}

	existing, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}

	u.PasswordHash = existing.PasswordHash
	if newPassword != "" {
		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	return s.users.Update(ctx, u)
}

// Delete removes an operator account. The main administrator cannot be
// deleted.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return fmt.Errorf("%w: the administrator account cannot be deleted", domain.ErrForbidden)
	}
	return s.users.Delete(ctx, id)
}

// List retrieves all operator accounts.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
