package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wklejka/internal/blob"
)

// Store implements blob.Store on the local filesystem. Each kind maps to a
// subdirectory of the base path (images/, files/). It is safe for concurrent
// use: distinct filenames never collide because the service derives them from
// unique clip ids.
type Store struct {
	basePath string
}

// New creates the per-kind directories under basePath if missing.
func New(basePath string) (*Store, error) {
	for _, kind := range []blob.Kind{blob.KindImage, blob.KindFile} {
		if err := os.MkdirAll(filepath.Join(basePath, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create blob directory: %w", err)
		}
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) Put(ctx context.Context, kind blob.Kind, filename string, r io.Reader, size int64) error {
	path := s.resolve(kind, filename)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create blob file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write blob file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close blob file: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, kind blob.Kind, filename string) (io.ReadCloser, int64, error) {
	path := s.resolve(kind, filename)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, blob.ErrNotFound
		}
		return nil, 0, fmt.Errorf("open blob file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat blob file: %w", err)
	}
	return f, st.Size(), nil
}

func (s *Store) Delete(ctx context.Context, kind blob.Kind, filename string) error {
	if err := os.Remove(s.resolve(kind, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob file: %w", err)
	}
	return nil
}

// resolve joins the kind directory with the filename's base name, which
// rejects any directory traversal in caller-supplied names.
func (s *Store) resolve(kind blob.Kind, filename string) string {
	return filepath.Join(s.basePath, string(kind), filepath.Base(filename))
}
