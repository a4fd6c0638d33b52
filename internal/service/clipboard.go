package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"wklejka/internal/blob"
	"wklejka/internal/docstore"
	"wklejka/internal/model"
)

var (
	ErrNameRequired           = errors.New("board name is required")
	ErrBoardNotFound          = errors.New("board not found")
	ErrClipNotFound           = errors.New("clip not found")
	ErrDefaultBoard           = errors.New("cannot delete default board")
	ErrTypeAndContentRequired = errors.New("type and content are required")
	ErrInvalidImageData       = errors.New("invalid image data")
	ErrInvalidFileData        = errors.New("invalid file data")
)

var (
	imageDataURL = regexp.MustCompile(`^data:image/([\w+]+);base64,(.+)$`)
	fileDataURL  = regexp.MustCompile(`^data:([^;]*);base64,(.+)$`)
	unsafeChars  = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// AddClipInput carries the submission payload for a new clip. Content is the
// raw text for text clips and a base64 data URL for image/file clips.
type AddClipInput struct {
	Type         string
	Content      string
	OriginalName string
}

// ClipboardService defines the board/clip use cases. It is the only component
// that constructs identifiers and timestamps.
type ClipboardService interface {
	// ListBoards returns all boards in creation order.
	ListBoards(ctx context.Context) ([]model.Board, error)

	// CreateBoard creates a board with a fresh id and an empty clip list.
	CreateBoard(ctx context.Context, name string) (*model.Board, error)

	// RenameBoard updates a board's name.
	RenameBoard(ctx context.Context, id, name string) (*model.Board, error)

	// DeleteBoard removes a board, its clip list and, best-effort, every
	// blob its clips reference. The default board can never be deleted.
	DeleteBoard(ctx context.Context, id string) error

	// ListClips returns a board's clips newest first. An unknown board
	// yields an empty slice, not an error.
	ListClips(ctx context.Context, boardID string) ([]model.Clip, error)

	// AddClip validates and stores a submission, writing the binary payload
	// to the blob store first for image/file clips. The new clip is
	// prepended to the board's list.
	AddClip(ctx context.Context, boardID string, in AddClipInput) (*model.Clip, error)

	// DeleteClip removes a clip and, best-effort, its blob.
	DeleteClip(ctx context.Context, boardID, clipID string) error
}

type clipboardService struct {
	docs   *docstore.Store
	blobs  blob.Store
	logger *slog.Logger
}

// NewClipboardService constructs a ClipboardService over the given document
// and blob stores.
func NewClipboardService(docs *docstore.Store, blobs blob.Store, logger *slog.Logger) ClipboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &clipboardService{docs: docs, blobs: blobs, logger: logger.With("component", "service")}
}

func (s *clipboardService) ListBoards(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	s.docs.View(func(doc *docstore.Document) {
		boards = append([]model.Board(nil), doc.Boards...)
	})
	return boards, nil
}

func (s *clipboardService) CreateBoard(ctx context.Context, name string) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	board := model.Board{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UnixMilli(),
	}
	s.docs.Mutate(func(doc *docstore.Document) {
		doc.Boards = append(doc.Boards, board)
		doc.Clips[board.ID] = []model.Clip{}
	})
	return &board, nil
}

func (s *clipboardService) RenameBoard(ctx context.Context, id, name string) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	var renamed *model.Board
	s.docs.Mutate(func(doc *docstore.Document) {
		for i := range doc.Boards {
			if doc.Boards[i].ID == id {
				doc.Boards[i].Name = name
				b := doc.Boards[i]
				renamed = &b
				return
			}
		}
	})
	if renamed == nil {
		return nil, ErrBoardNotFound
	}
	return renamed, nil
}

func (s *clipboardService) DeleteBoard(ctx context.Context, id string) error {
	if id == model.DefaultBoardID {
		return ErrDefaultBoard
	}

	var found bool
	var orphaned []model.Clip
	s.docs.Mutate(func(doc *docstore.Document) {
		for i := range doc.Boards {
			if doc.Boards[i].ID == id {
				found = true
				doc.Boards = append(doc.Boards[:i], doc.Boards[i+1:]...)
				break
			}
		}
		if !found {
			return
		}
		orphaned = doc.Clips[id]
		delete(doc.Clips, id)
	})
	if !found {
		return ErrBoardNotFound
	}

	for _, clip := range orphaned {
		s.deleteBlob(ctx, clip)
	}
	return nil
}

func (s *clipboardService) ListClips(ctx context.Context, boardID string) ([]model.Clip, error) {
	clips := []model.Clip{}
	s.docs.View(func(doc *docstore.Document) {
		clips = append(clips, doc.Clips[boardID]...)
	})
	return clips, nil
}

func (s *clipboardService) AddClip(ctx context.Context, boardID string, in AddClipInput) (*model.Clip, error) {
	if !s.boardExists(boardID) {
		return nil, ErrBoardNotFound
	}
	if in.Type == "" || in.Content == "" {
		return nil, ErrTypeAndContentRequired
	}

	clip := model.Clip{
		ID:        uuid.NewString(),
		Type:      in.Type,
		CreatedAt: time.Now().UnixMilli(),
	}

	switch in.Type {
	case model.ClipTypeImage:
		m := imageDataURL.FindStringSubmatch(in.Content)
		if m == nil {
			return nil, ErrInvalidImageData
		}
		payload, err := base64.StdEncoding.DecodeString(m[2])
		if err != nil {
			return nil, ErrInvalidImageData
		}
		ext := m[1]
		if ext == "jpeg" {
			ext = "jpg"
		} else {
			ext = strings.Replace(ext, "+xml", "", 1)
		}
		clip.Filename = clip.ID + "." + ext
		clip.ImageURL = "/api/images/" + clip.Filename
		if err := s.blobs.Put(ctx, blob.KindImage, clip.Filename, bytes.NewReader(payload), int64(len(payload))); err != nil {
			return nil, fmt.Errorf("store image payload: %w", err)
		}

	case model.ClipTypeFile:
		m := fileDataURL.FindStringSubmatch(in.Content)
		if m == nil {
			return nil, ErrInvalidFileData
		}
		payload, err := base64.StdEncoding.DecodeString(m[2])
		if err != nil {
			return nil, ErrInvalidFileData
		}
		originalName := in.OriginalName
		if originalName == "" {
			originalName = "file"
		}
		clip.OriginalName = originalName
		clip.Filename = clip.ID + "_" + SanitizeFilename(originalName)
		clip.Size = int64(len(payload))
		clip.FileURL = "/api/files/" + clip.Filename
		if err := s.blobs.Put(ctx, blob.KindFile, clip.Filename, bytes.NewReader(payload), clip.Size); err != nil {
			return nil, fmt.Errorf("store file payload: %w", err)
		}

	default:
		clip.Content = in.Content
	}

	// The blob is written before the in-memory insert, so a failed write
	// leaves no clip referencing a non-existent blob. If the board vanished
	// while the blob was being written, undo the write.
	var inserted bool
	s.docs.Mutate(func(doc *docstore.Document) {
		if _, ok := doc.Clips[boardID]; !ok {
			return
		}
		doc.Clips[boardID] = append([]model.Clip{clip}, doc.Clips[boardID]...)
		inserted = true
	})
	if !inserted {
		s.deleteBlob(ctx, clip)
		return nil, ErrBoardNotFound
	}
	return &clip, nil
}

func (s *clipboardService) DeleteClip(ctx context.Context, boardID, clipID string) error {
	if !s.boardExists(boardID) {
		return ErrBoardNotFound
	}

	var removed *model.Clip
	s.docs.Mutate(func(doc *docstore.Document) {
		clips, ok := doc.Clips[boardID]
		if !ok {
			return
		}
		for i := range clips {
			if clips[i].ID == clipID {
				c := clips[i]
				removed = &c
				doc.Clips[boardID] = append(clips[:i], clips[i+1:]...)
				return
			}
		}
	})
	if removed == nil {
		return ErrClipNotFound
	}

	s.deleteBlob(ctx, *removed)
	return nil
}

// boardExists checks clip-list membership, which mirrors board presence: every
// board has a clip list for its whole lifetime.
func (s *clipboardService) boardExists(id string) bool {
	var ok bool
	s.docs.View(func(doc *docstore.Document) {
		_, ok = doc.Clips[id]
	})
	return ok
}

// deleteBlob best-effort removes a clip's backing blob. Failures are logged,
// never surfaced: the clip record is already gone and a stray blob is
// preferable to a failed delete.
func (s *clipboardService) deleteBlob(ctx context.Context, clip model.Clip) {
	if !clip.HasBlob() {
		return
	}
	kind := blob.KindImage
	if clip.Type == model.ClipTypeFile {
		kind = blob.KindFile
	}
	if err := s.blobs.Delete(ctx, kind, clip.Filename); err != nil {
		s.logger.Warn("failed to delete clip blob", "clip_id", clip.ID, "filename", clip.Filename, "error", err)
	}
}

// SanitizeFilename replaces every character outside [A-Za-z0-9._-] with an
// underscore. The result is deterministic for a given input.
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}
