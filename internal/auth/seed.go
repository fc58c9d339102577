package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/stock-dashboard/internal/models"
	"github.com/rogerio-castellano/stock-dashboard/internal/repo"
)

const AdminUsername = "admin"

// AccountStore is the part of the user store seeding needs.
type AccountStore interface {
	UserLookup
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}

// EnsureAdmin creates the admin account when it does not exist yet. It
// reports whether an account was created.
func EnsureAdmin(ctx context.Context, users AccountStore, hasher PasswordHasher, password string) (bool, error) {
	if password == "" {
		return false, errors.New("admin password must not be empty")
	}

	_, err := users.GetByUsername(ctx, AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}

	_, err = users.CreateUser(ctx, models.User{
		Username:     AdminUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}
