package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/stock-dashboard/internal/models"
	"github.com/rogerio-castellano/stock-dashboard/internal/repo"
)

// UserLookup is the part of the user store login needs.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type LoginResult struct {
	User  models.User
	Token string
}

// Service issues credentials for users presenting a valid password.
type Service struct {
	users  UserLookup
	hasher PasswordHasher
	gate   *Gate
}

func NewService(users UserLookup, hasher PasswordHasher, gate *Gate) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		gate:   gate,
	}
}

func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return LoginResult{}, ErrUnknownIdentity
		}
		return LoginResult{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return LoginResult{}, ErrBadSecret
	}

	token, err := s.gate.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: user, Token: token}, nil
}
