package blob

import (
	"context"
	"errors"
	"io"
)

// Package blob contains the binary payload storage abstraction backing image
// and file clips. Payload bytes live here, referenced by filename from clip
// records but never embedded in the JSON document.

// Kind namespaces blobs by clip type.
type Kind string

const (
	KindImage Kind = "images"
	KindFile  Kind = "files"
)

// ErrNotFound is returned by Get when no blob exists under the given filename.
var ErrNotFound = errors.New("blob not found")

// Store is the blob storage interface. Filenames are reduced to their base
// name before resolution, so a caller-supplied path can never escape the
// kind's namespace. Delete is idempotent: removing a missing blob is not an
// error.
type Store interface {
	// Put writes size bytes from r under filename within the kind's
	// namespace, overwriting any existing blob with the same name.
	Put(ctx context.Context, kind Kind, filename string, r io.Reader, size int64) error
	// Get returns the blob's content as a streaming reader along with its
	// size, or ErrNotFound.
	Get(ctx context.Context, kind Kind, filename string) (io.ReadCloser, int64, error)
	// Delete removes a blob; a missing blob is not an error.
	Delete(ctx context.Context, kind Kind, filename string) error
}
