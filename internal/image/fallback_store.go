package image

import (
	"context"

	"github.com/rs/zerolog"
)

// fallbackStore saves to the primary store and falls back to the secondary
// when the primary fails. Deletes are routed to whichever store owns the ref.
type fallbackStore struct {
	primary   Store
	secondary Store
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that tries primary first, then secondary.
func NewFallbackStore(primary, secondary Store, logger zerolog.Logger) Store {
	return &fallbackStore{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "fallback-image-store").Logger(),
	}
}

func (s *fallbackStore) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	ref, err := s.primary.Save(ctx, filename, contentType, data)
	if err == nil {
		return ref, nil
	}

	s.logger.Warn().
		Err(err).
		Str("filename", filename).
		Msg("primary image store failed, falling back to secondary")

	return s.secondary.Save(ctx, filename, contentType, data)
}

func (s *fallbackStore) Delete(ctx context.Context, ref string) error {
	switch {
	case s.primary.Owns(ref):
		return s.primary.Delete(ctx, ref)
	case s.secondary.Owns(ref):
		return s.secondary.Delete(ctx, ref)
	default:
		return nil
	}
}

func (s *fallbackStore) Owns(ref string) bool {
	return s.primary.Owns(ref) || s.secondary.Owns(ref)
}
