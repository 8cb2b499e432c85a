// Package image stores uploaded product images and company logos.
package image

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves image bytes and hands back the reference clients fetch them by.
type Store interface {
	// Save stores data and returns its reference. filename only contributes
	// its extension.
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)

	// Delete removes the image behind ref. References the store does not own
	// (external URLs) are ignored.
	Delete(ctx context.Context, ref string) error

	// Owns reports whether ref was produced by this store.
	Owns(ref string) bool
}

// objectName builds a collision-free name keeping the upload's extension.
// When the filename has none, the sniffed one is used.
func objectName(filename, sniffedExt string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = sniffedExt
	}
	return uuid.NewString() + ext
}
