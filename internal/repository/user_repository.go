package repository

import (
	"context"

	"stockroom/internal/model"
	"stockroom/internal/store"

	"github.com/rs/zerolog"
)

func userID(u model.User) string { return u.ID }

type userRepository struct {
	users  *collection[model.User]
	logger zerolog.Logger
}

// NewUserRepository creates the user repository persisted through s.
func NewUserRepository(s store.Store, logger zerolog.Logger) UserRepository {
	logger = logger.With().Str("repository", "user").Logger()
	return &userRepository{
		users:  newCollection(store.Users, s, userID, logger),
		logger: logger,
	}
}

// FindByUsername returns the user with the exact username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := r.users.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, notFound("User", username)
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok, err := r.users.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("User", id)
	}
	return &u, nil
}

// Count returns the number of accounts.
func (r *userRepository) Count(ctx context.Context) (int, error) {
	users, err := r.users.all(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// CreateIfEmpty stores user only when there are no users yet.
func (r *userRepository) CreateIfEmpty(ctx context.Context, user model.User) (bool, error) {
	created := false
	err := r.users.update(ctx, func(items []model.User) ([]model.User, error) {
		if len(items) > 0 {
			return nil, errNoChange
		}
		created = true
		return []model.User{user}, nil
	})
	if err != nil {
		return false, err
	}
	if created {
		r.logger.Info().Str("username", user.Username).Msg("created initial user")
	}
	return created, nil
}
