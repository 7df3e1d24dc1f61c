package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"photobooth/internal/domain"
)

type PhotoService struct {
	mock.Mock
}

func (m *PhotoService) StorageReady() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *PhotoService) Upload(ctx context.Context, input domain.UploadInput) (*domain.Photo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *PhotoService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *PhotoService) List(ctx context.Context, query string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Photo], error) {
	args := m.Called(ctx, query, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Photo]), args.Error(1)
}

func (m *PhotoService) Open(ctx context.Context, id uuid.UUID) (*domain.Photo, io.ReadCloser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Photo), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *PhotoService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PhotoService) DeleteLegacy(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
