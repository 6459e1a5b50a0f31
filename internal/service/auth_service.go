package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetstack/fleetpoint/internal/auth"
	"github.com/fleetstack/fleetpoint/internal/domain"
)

// AuthService verifies operator credentials and issues bearer tokens.
type AuthService struct {
	users  domain.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(users domain.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login checks the credentials and returns the user with a signed
// token. Unknown usernames and wrong passwords are indistinguishable to
// the caller; inactive accounts are rejected explicitly.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}
	if !u.Active {
		return nil, "", fmt.Errorf("%w: account is inactive", domain.ErrForbidden)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return u, token, nil
}
