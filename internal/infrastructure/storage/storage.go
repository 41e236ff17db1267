// Package storage keeps uploaded media (property photos, avatars) in object storage.
package storage

import (
	"context"
	"io"
)

// Object describes a stored blob.
type Object struct {
	Path        string
	URL         string
	ContentType string
}

type Store interface {
	// Upload writes r under prefix/owner/<random><ext of filename>.
	Upload(ctx context.Context, prefix, owner, filename, contentType string, r io.Reader) (Object, error)
	// Delete removes the object; a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
