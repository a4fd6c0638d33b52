package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"wklejka/internal/blob"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, kind blob.Kind, filename string, r io.Reader, size int64) error {
	args := m.Called(ctx, kind, filename, r, size)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, kind blob.Kind, filename string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, kind, filename)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) Delete(ctx context.Context, kind blob.Kind, filename string) error {
	args := m.Called(ctx, kind, filename)
	return args.Error(0)
}
