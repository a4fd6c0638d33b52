package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wklejka/internal/model"
	"wklejka/internal/service"
)

type MockClipboardService struct {
	mock.Mock
}

func (m *MockClipboardService) ListBoards(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockClipboardService) CreateBoard(ctx context.Context, name string) (*model.Board, error) {
	args := m.Called(ctx, name)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockClipboardService) RenameBoard(ctx context.Context, id, name string) (*model.Board, error) {
	args := m.Called(ctx, id, name)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockClipboardService) DeleteBoard(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClipboardService) ListClips(ctx context.Context, boardID string) ([]model.Clip, error) {
	args := m.Called(ctx, boardID)
	clips, _ := args.Get(0).([]model.Clip)
	return clips, args.Error(1)
}

func (m *MockClipboardService) AddClip(ctx context.Context, boardID string, in service.AddClipInput) (*model.Clip, error) {
	args := m.Called(ctx, boardID, in)
	clip, _ := args.Get(0).(*model.Clip)
	return clip, args.Error(1)
}

func (m *MockClipboardService) DeleteClip(ctx context.Context, boardID, clipID string) error {
	args := m.Called(ctx, boardID, clipID)
	return args.Error(0)
}
