package service

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wklejka/internal/blob"
	blobMocks "wklejka/internal/blob/mocks"
	"wklejka/internal/docstore"
	"wklejka/internal/model"
)

func newTestService(t *testing.T) (ClipboardService, *blobMocks.MockStore) {
	t.Helper()
	docs, err := docstore.Open(filepath.Join(t.TempDir(), "store.json"), time.Hour, nil)
	require.NoError(t, err)
	t.Cleanup(func() { docs.Close() })

	blobs := new(blobMocks.MockStore)
	return NewClipboardService(docs, blobs, nil), blobs
}

func TestCreateBoard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("happy path", func(t *testing.T) {
		board, err := svc.CreateBoard(ctx, "  Work  ")
		require.NoError(t, err)
		assert.Equal(t, "Work", board.Name)
		assert.NotEmpty(t, board.ID)
		assert.NotZero(t, board.CreatedAt)

		boards, err := svc.ListBoards(ctx)
		require.NoError(t, err)
		require.Len(t, boards, 2) // default + Work, creation order
		assert.Equal(t, model.DefaultBoardID, boards[0].ID)
		assert.Equal(t, board.ID, boards[1].ID)

		clips, err := svc.ListClips(ctx, board.ID)
		require.NoError(t, err)
		assert.Empty(t, clips)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.CreateBoard(ctx, "   ")
		assert.ErrorIs(t, err, ErrNameRequired)
	})
}

func TestRenameBoard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	board, err := svc.CreateBoard(ctx, "Work")
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		renamed, err := svc.RenameBoard(ctx, board.ID, "Projects")
		require.NoError(t, err)
		assert.Equal(t, "Projects", renamed.Name)
		assert.Equal(t, board.ID, renamed.ID)
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := svc.RenameBoard(ctx, "missing", "Projects")
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.RenameBoard(ctx, board.ID, " ")
		assert.ErrorIs(t, err, ErrNameRequired)
	})
}

func TestDeleteBoard(t *testing.T) {
	ctx := context.Background()

	t.Run("default board is permanent", func(t *testing.T) {
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.DeleteBoard(ctx, model.DefaultBoardID), ErrDefaultBoard)

		boards, _ := svc.ListBoards(ctx)
		assert.Len(t, boards, 1)
	})

	t.Run("unknown board", func(t *testing.T) {
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.DeleteBoard(ctx, "missing"), ErrBoardNotFound)
	})

	t.Run("cascade deletes clip blobs", func(t *testing.T) {
		svc, blobs := newTestService(t)
		board, err := svc.CreateBoard(ctx, "Work")
		require.NoError(t, err)

		blobs.On("Put", mock.Anything, blob.KindImage, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		img, err := svc.AddClip(ctx, board.ID, AddClipInput{
			Type:    model.ClipTypeImage,
			Content: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes")),
		})
		require.NoError(t, err)

		_, err = svc.AddClip(ctx, board.ID, AddClipInput{Type: model.ClipTypeText, Content: "note"})
		require.NoError(t, err)

		blobs.On("Delete", mock.Anything, blob.KindImage, img.Filename).Return(nil).Once()
		require.NoError(t, svc.DeleteBoard(ctx, board.ID))

		clips, err := svc.ListClips(ctx, board.ID)
		require.NoError(t, err)
		assert.Empty(t, clips)
		blobs.AssertExpectations(t)

		// Second delete reports not found and changes nothing.
		assert.ErrorIs(t, svc.DeleteBoard(ctx, board.ID), ErrBoardNotFound)
	})

	t.Run("blob delete failure does not block the cascade", func(t *testing.T) {
		svc, blobs := newTestService(t)
		board, err := svc.CreateBoard(ctx, "Work")
		require.NoError(t, err)

		blobs.On("Put", mock.Anything, blob.KindFile, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		_, err = svc.AddClip(ctx, board.ID, AddClipInput{
			Type:         model.ClipTypeFile,
			Content:      "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hi")),
			OriginalName: "notes.txt",
		})
		require.NoError(t, err)

		blobs.On("Delete", mock.Anything, blob.KindFile, mock.Anything).Return(errors.New("io error"))
		assert.NoError(t, svc.DeleteBoard(ctx, board.ID))
	})
}

func TestAddClipText(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	clip, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeText, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, model.ClipTypeText, clip.Type)
	assert.Equal(t, "hello", clip.Content)
	assert.NotEmpty(t, clip.ID)

	second, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeText, Content: "world"})
	require.NoError(t, err)
	assert.NotEqual(t, clip.ID, second.ID)

	// Newest first.
	clips, err := svc.ListClips(ctx, model.DefaultBoardID)
	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, second.ID, clips[0].ID)
	assert.Equal(t, clip.ID, clips[1].ID)
}

func TestAddClipValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("unknown board", func(t *testing.T) {
		_, err := svc.AddClip(ctx, "missing", AddClipInput{Type: model.ClipTypeText, Content: "x"})
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Content: "x"})
		assert.ErrorIs(t, err, ErrTypeAndContentRequired)
	})

	t.Run("missing content", func(t *testing.T) {
		_, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeText})
		assert.ErrorIs(t, err, ErrTypeAndContentRequired)
	})

	t.Run("malformed image data url", func(t *testing.T) {
		_, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeImage, Content: "not-a-data-url"})
		assert.ErrorIs(t, err, ErrInvalidImageData)
	})

	t.Run("image with undecodable base64", func(t *testing.T) {
		_, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeImage, Content: "data:image/png;base64,!!!"})
		assert.ErrorIs(t, err, ErrInvalidImageData)
	})

	t.Run("malformed file data url", func(t *testing.T) {
		_, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeFile, Content: "plain text"})
		assert.ErrorIs(t, err, ErrInvalidFileData)
	})
}

func TestAddClipImage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		subtype string
		wantExt string
	}{
		{"png keeps extension", "png", "png"},
		{"jpeg maps to jpg", "jpeg", "jpg"},
		{"svg+xml strips xml suffix", "svg+xml", "svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, blobs := newTestService(t)
			payload := []byte("image-bytes")
			content := "data:image/" + tt.subtype + ";base64," + base64.StdEncoding.EncodeToString(payload)

			blobs.On("Put", mock.Anything, blob.KindImage, mock.MatchedBy(func(name string) bool {
				return filepath.Ext(name) == "."+tt.wantExt
			}), mock.Anything, int64(len(payload))).Return(nil).Once()

			clip, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeImage, Content: content})
			require.NoError(t, err)
			assert.Equal(t, clip.ID+"."+tt.wantExt, clip.Filename)
			assert.Equal(t, "/api/images/"+clip.Filename, clip.ImageURL)
			assert.Empty(t, clip.Content)
			blobs.AssertExpectations(t)
		})
	}
}

func TestAddClipFile(t *testing.T) {
	ctx := context.Background()

	t.Run("sanitizes original name", func(t *testing.T) {
		svc, blobs := newTestService(t)
		payload := []byte("file contents")
		content := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(payload)

		blobs.On("Put", mock.Anything, blob.KindFile, mock.Anything, mock.Anything, int64(len(payload))).Return(nil).Once()

		clip, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{
			Type:         model.ClipTypeFile,
			Content:      content,
			OriginalName: "a/b?.txt",
		})
		require.NoError(t, err)
		assert.Equal(t, "a/b?.txt", clip.OriginalName)
		assert.Equal(t, clip.ID+"_a_b_.txt", clip.Filename)
		assert.NotContains(t, clip.Filename, "/")
		assert.NotContains(t, clip.Filename, "?")
		assert.Equal(t, int64(len(payload)), clip.Size)
		assert.Equal(t, "/api/files/"+clip.Filename, clip.FileURL)
		blobs.AssertExpectations(t)
	})

	t.Run("original name defaults to file", func(t *testing.T) {
		svc, blobs := newTestService(t)
		content := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("x"))

		blobs.On("Put", mock.Anything, blob.KindFile, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		clip, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeFile, Content: content})
		require.NoError(t, err)
		assert.Equal(t, "file", clip.OriginalName)
		assert.Equal(t, clip.ID+"_file", clip.Filename)
	})

	t.Run("blob write failure fails the creation", func(t *testing.T) {
		svc, blobs := newTestService(t)
		content := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("x"))

		blobs.On("Put", mock.Anything, blob.KindFile, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("disk full")).Once()

		_, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeFile, Content: content})
		require.Error(t, err)

		// No dangling clip referencing the unwritten blob.
		clips, lerr := svc.ListClips(ctx, model.DefaultBoardID)
		require.NoError(t, lerr)
		assert.Empty(t, clips)
	})
}

func TestDeleteClip(t *testing.T) {
	ctx := context.Background()

	t.Run("text clip", func(t *testing.T) {
		svc, blobs := newTestService(t)
		clip, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeText, Content: "x"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteClip(ctx, model.DefaultBoardID, clip.ID))

		clips, _ := svc.ListClips(ctx, model.DefaultBoardID)
		assert.Empty(t, clips)
		// No blob interactions for text clips.
		blobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)

		// Deleting again reports not found.
		assert.ErrorIs(t, svc.DeleteClip(ctx, model.DefaultBoardID, clip.ID), ErrClipNotFound)
	})

	t.Run("image clip deletes its blob", func(t *testing.T) {
		svc, blobs := newTestService(t)
		content := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))

		blobs.On("Put", mock.Anything, blob.KindImage, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		clip, err := svc.AddClip(ctx, model.DefaultBoardID, AddClipInput{Type: model.ClipTypeImage, Content: content})
		require.NoError(t, err)

		blobs.On("Delete", mock.Anything, blob.KindImage, clip.Filename).Return(nil).Once()
		require.NoError(t, svc.DeleteClip(ctx, model.DefaultBoardID, clip.ID))
		blobs.AssertExpectations(t)
	})

	t.Run("unknown board", func(t *testing.T) {
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.DeleteClip(ctx, "missing", "c1"), ErrBoardNotFound)
	})
}

func TestListClipsUnknownBoardIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	clips, err := svc.ListClips(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, clips)
	assert.Empty(t, clips)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes.txt", "notes.txt"},
		{"a/b?.txt", "a_b_.txt"},
		{"raport końcowy.pdf", "raport_ko_cowy.pdf"},
		{"..", ".."},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		// Deterministic for the same input.
		assert.Equal(t, SanitizeFilename(tt.in), SanitizeFilename(tt.in))
	}
}
