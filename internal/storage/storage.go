// Package storage keeps uploaded attachments, either in a local folder or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Open when no object is stored under the name.
var ErrNotExist = errors.New("file does not exist")

// Storage defines the interface for attachment storage.
// Names are single path elements produced by SecureFilename.
type Storage interface {
	// Save stores r under name, overwriting any previous object.
	Save(ctx context.Context, name string, r io.Reader) error
	// Open returns the stored object or ErrNotExist.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove deletes the object. A missing object is not an error.
	Remove(ctx context.Context, name string) error
}
