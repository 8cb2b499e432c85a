package image

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// FileStore keeps images in a local directory served under urlPrefix.
type FileStore struct {
	dir       string
	urlPrefix string
	logger    zerolog.Logger
}

// NewFileStore creates dir if needed.
func NewFileStore(dir, urlPrefix string, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &FileStore{
		dir:       dir,
		urlPrefix: urlPrefix,
		logger:    logger.With().Str("component", "file-image-store").Logger(),
	}, nil
}

// Dir returns the directory images are written to.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes data to a new file and returns its URL path.
func (s *FileStore) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := objectName(filename, mimetype.Detect(data).Extension())
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", name).Msg("failed to write image")
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	s.logger.Info().Str("file", name).Int("bytes", len(data)).Msg("image stored")
	return s.urlPrefix + name, nil
}

// Delete removes the file behind ref. A missing file is not an error.
func (s *FileStore) Delete(ctx context.Context, ref string) error {
	if !s.Owns(ref) {
		return nil
	}

	name := strings.TrimPrefix(ref, s.urlPrefix)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(err).Str("file", name).Msg("failed to delete image")
		return fmt.Errorf("failed to delete image: %w", err)
	}

	s.logger.Info().Str("file", name).Msg("image deleted")
	return nil
}

// Owns reports whether ref names a file directly inside the upload directory.
func (s *FileStore) Owns(ref string) bool {
	name, ok := strings.CutPrefix(ref, s.urlPrefix)
	if !ok || name == "" {
		return false
	}
	return path.Base(name) == name && name != ".." && name != "."
}
