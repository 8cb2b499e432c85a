package repository

import (
	"context"
	"errors"
	"testing"

	"stockroom/internal/model"
	"stockroom/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemoryStore(), zerolog.Nop())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	created, err := repo.CreateIfEmpty(ctx, model.User{ID: "u1", Username: "admin", Role: "admin"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfEmpty(ctx, model.User{ID: "u2", Username: "other"})
	require.NoError(t, err)
	assert.False(t, created)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	u, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = repo.FindByUsername(ctx, "Admin")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	u, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	_, err = repo.GetByID(ctx, "u2")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
