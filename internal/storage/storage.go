// Package storage provides product image persistence. The storefront only
// stores image URLs; the bytes live in an external blob store.
package storage

import (
	"context"

	"techstore/internal/model"
)

// ImageStore uploads image bytes and returns a public URL.
type ImageStore interface {
	// Put stores an image and returns its URL. The filename is only used
	// for its extension.
	Put(ctx context.Context, filename, contentType string, data []byte) (string, error)

	// Remove deletes a previously stored image by URL. Unknown URLs are
	// ignored; removal is best effort.
	Remove(ctx context.Context, url string) error
}

// Disabled is the store used when no bucket is configured. Uploads are
// rejected with a caller-facing error; removals are silently ignored so
// products that still reference old URLs can be deleted.
type Disabled struct{}

func (Disabled) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	return "", model.NewValidationError("Image storage is not configured")
}

func (Disabled) Remove(ctx context.Context, url string) error {
	return nil
}
