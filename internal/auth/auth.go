// Package auth checks login credentials and tracks the signed-in user in a
// cookie session.
package auth

import (
	"context"
	"errors"
	"fmt"

	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the role given to the seeded account.
const RoleAdmin = "admin"

// Authenticator verifies usernames and passwords against the users collection.
type Authenticator struct {
	users  repository.UserRepository
	cost   int
	logger zerolog.Logger
}

// NewAuthenticator creates an Authenticator hashing with bcrypt.DefaultCost.
func NewAuthenticator(users repository.UserRepository, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		users:  users,
		cost:   bcrypt.DefaultCost,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// Login returns the user when password matches. Unknown users and wrong
// passwords both fail with ErrInvalidLogin.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Warn().Str("username", username).Msg("login for unknown user")
			return nil, model.ErrInvalidLogin
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Warn().Str("username", username).Msg("login with wrong password")
		return nil, model.ErrInvalidLogin
	}

	a.logger.Info().Str("username", username).Msg("user logged in")
	return user, nil
}

// User returns the account for a session's user ID.
func (a *Authenticator) User(ctx context.Context, id string) (*model.User, error) {
	return a.users.GetByID(ctx, id)
}

// SeedAdmin creates the initial admin account when there are no users.
// password may only be empty when users already exist.
func (a *Authenticator) SeedAdmin(ctx context.Context, username, password string) error {
	if password == "" {
		n, err := a.users.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("ADMIN_PASSWORD is required to create the first user")
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = a.users.CreateIfEmpty(ctx, model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         RoleAdmin,
	})
	return err
}
