package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"stockroom/internal/model"
	"stockroom/internal/store"

	"github.com/rs/zerolog"
)

// errNoChange aborts an update without writing and without failing it.
var errNoChange = errors.New("no change")

// collection is an ordered, id-indexed set of records of one kind. It is
// loaded from the store on first use and written back whole after every
// mutation. The mutex spans the full read-modify-write cycle.
type collection[T any] struct {
	name   string
	store  store.Store
	idOf   func(T) string
	logger zerolog.Logger

	mu     sync.Mutex
	loaded bool
	items  []T
	index  map[string]int
}

func newCollection[T any](name string, s store.Store, idOf func(T) string, logger zerolog.Logger) *collection[T] {
	return &collection[T]{
		name:   name,
		store:  s,
		idOf:   idOf,
		logger: logger,
	}
}

// ensureLoaded must be called with mu held.
func (c *collection[T]) ensureLoaded(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	raw, err := c.store.Load(ctx, c.name)
	if err != nil {
		c.logger.Error().Err(err).Str("collection", c.name).Msg("failed to load collection")
		return model.NewStorageError("load "+c.name, err)
	}

	items := make([]T, 0, len(raw))
	for i, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			c.logger.Error().Err(err).Str("collection", c.name).Int("position", i).Msg("failed to decode record")
			return model.NewStorageError("decode "+c.name, err)
		}
		items = append(items, item)
	}

	c.replace(items)
	c.loaded = true
	c.logger.Debug().Str("collection", c.name).Int("records", len(items)).Msg("loaded collection")
	return nil
}

func (c *collection[T]) replace(items []T) {
	c.items = items
	c.index = make(map[string]int, len(items))
	for i, item := range items {
		c.index[c.idOf(item)] = i
	}
}

// all returns a copy of the records in stored order.
func (c *collection[T]) all(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(c.items), nil
}

// get looks a record up by id.
func (c *collection[T]) get(ctx context.Context, id string) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.ensureLoaded(ctx); err != nil {
		return zero, false, err
	}
	i, ok := c.index[id]
	if !ok {
		return zero, false, nil
	}
	return c.items[i], true, nil
}

// update runs fn on a copy of the records and persists what it returns.
// The in-memory state only changes once the store accepted the write. If fn
// fails nothing is written.
func (c *collection[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}

	next, err := fn(slices.Clone(c.items))
	if errors.Is(err, errNoChange) {
		return nil
	}
	if err != nil {
		return err
	}

	raw := make([]json.RawMessage, len(next))
	for i, item := range next {
		b, err := json.Marshal(item)
		if err != nil {
			return model.NewStorageError("encode "+c.name, err)
		}
		raw[i] = b
	}

	if err := c.store.Save(ctx, c.name, raw); err != nil {
		c.logger.Error().Err(err).Str("collection", c.name).Msg("failed to flush collection")
		return model.NewStorageError("save "+c.name, err)
	}

	c.replace(next)
	return nil
}

// position returns the index of id within items, or -1.
func position[T any](items []T, idOf func(T) string, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
}

func notFound(kind, id string) error {
	return model.NewNotFoundError(kind, id)
}

func duplicate(kind, id string) error {
	return model.NewConflictError(fmt.Sprintf("%s %s already exists", kind, id))
}
