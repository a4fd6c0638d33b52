package docstore

// Package docstore is the single source of truth for boards and clips. The
// whole application state lives in one in-memory document mirrored to a JSON
// file on disk. Durable writes are debounced: a mutation re-arms a short timer
// and only the most recent pending timer performs the write, which bounds
// write amplification under bursts at the cost of a small data-loss window on
// abrupt termination.

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"wklejka/internal/model"
)

// DefaultBoardName is the display name given to the bootstrap board.
const DefaultBoardName = "Schowek"

// Document is the full persisted application state.
type Document struct {
	Boards []model.Board           `json:"boards"`
	Clips  map[string][]model.Clip `json:"clips"`
}

// Store owns the in-memory document and mirrors it to a single JSON file.
// All access goes through Mutate/View, which serialize document access under
// one mutex; mutations are therefore totally ordered by arrival and readers
// never observe a torn intermediate state.
type Store struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	doc   Document
	timer *time.Timer
}

// Open loads the document at path if present and well-formed. A missing or
// corrupt file, or one containing zero boards, resets state to exactly one
// default board with an empty clip list and writes it out immediately. Load
// failures are logged and never returned; the bootstrap state stands.
func Open(path string, debounce time.Duration, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	s := &Store{
		path:     path,
		debounce: debounce,
		logger:   logger.With("component", "docstore"),
	}
	s.load()
	return s, nil
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err == nil {
		if uerr := json.Unmarshal(data, &s.doc); uerr != nil {
			s.logger.Error("failed to parse store document, resetting", "path", s.path, "error", uerr)
			s.doc = Document{}
		}
	} else if !os.IsNotExist(err) {
		s.logger.Error("failed to read store document, resetting", "path", s.path, "error", err)
	}

	if s.doc.Clips == nil {
		s.doc.Clips = make(map[string][]model.Clip)
	}
	if len(s.doc.Boards) == 0 {
		s.doc.Boards = []model.Board{{
			ID:        model.DefaultBoardID,
			Name:      DefaultBoardName,
			CreatedAt: time.Now().UnixMilli(),
		}}
		s.doc.Clips = map[string][]model.Clip{model.DefaultBoardID: {}}
		if err := s.write(); err != nil {
			s.logger.Error("failed to write bootstrap document", "path", s.path, "error", err)
		}
	}
}

// Mutate applies fn to the document under the store mutex and schedules a
// debounced durable flush. The in-memory mutation always stands; a later
// flush failure is logged, not surfaced.
func (s *Store) Mutate(fn func(*Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.doc)

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.Flush(); err != nil {
			s.logger.Error("debounced flush failed", "path", s.path, "error", err)
		}
	})
}

// View runs fn with read access to the document under the store mutex.
// fn must not retain references to the document's slices or maps.
func (s *Store) View(fn func(*Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.doc)
}

// Flush writes the document to disk immediately, bypassing the debounce.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// Close cancels any pending debounce timer and performs a final flush.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.Flush()
}

// write marshals the document and replaces the file atomically via a temp
// file and rename. Callers must hold s.mu.
func (s *Store) write() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
