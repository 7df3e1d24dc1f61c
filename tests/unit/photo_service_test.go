package unit_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"photobooth/internal/config"
	"photobooth/internal/domain"
	"photobooth/internal/service"
	"photobooth/tests/mocks"
)

func newTestConfig() *config.Config {
	return &config.Config{
		StorageBackend:    "minio",
		MinIOPublicUseSSL: true,
		MaxFileMB:         10,
	}
}

func TestPhotoService_Upload(t *testing.T) {
	ctx := context.Background()

	input := domain.UploadInput{
		OriginalName: "cat.png",
		MimeType:     "image/png",
		Size:         4,
		Reader:       strings.NewReader("data"),
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		blobs := new(mocks.BlobStore)
		svc := service.NewPhotoService(repo, blobs, newTestConfig())

		blobs.On("Put", ctx, mock.Anything, mock.Anything, int64(4), "image/png").
			Return("https://cdn.example.com/photos/cat.png", nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Photo) bool {
			return p.OriginalName == "cat.png" &&
				p.Size == 4 &&
				p.BlobURL != nil && *p.BlobURL == "https://cdn.example.com/photos/cat.png" &&
				p.StorageKey != nil && *p.StorageKey != ""
		})).Return(nil).Once()

		photo, err := svc.Upload(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, photo)
		assert.True(t, photo.HasURL)
		assert.NotEqual(t, uuid.Nil, photo.ID)

		repo.AssertExpectations(t)
		blobs.AssertExpectations(t)
	})

	t.Run("Blob Write Fails", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		blobs := new(mocks.BlobStore)
		svc := service.NewPhotoService(repo, blobs, newTestConfig())

		blobs.On("Put", ctx, mock.Anything, mock.Anything, int64(4), "image/png").
			Return("", errors.New("connection refused")).Once()

		photo, err := svc.Upload(ctx, input)

		assert.ErrorIs(t, err, domain.ErrBlobWrite)
		assert.Nil(t, photo)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Blob URL", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		blobs := new(mocks.BlobStore)
		svc := service.NewPhotoService(repo, blobs, newTestConfig())

		blobs.On("Put", ctx, mock.Anything, mock.Anything, int64(4), "image/png").
			Return("", nil).Once()
		blobs.On("Remove", ctx, mock.Anything).Return(nil).Once()

		photo, err := svc.Upload(ctx, input)

		assert.ErrorIs(t, err, domain.ErrBlobURLInvalid)
		assert.Nil(t, photo)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		blobs.AssertExpectations(t)
	})

	t.Run("Insecure URL Rejected", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		blobs := new(mocks.BlobStore)
		svc := service.NewPhotoService(repo, blobs, newTestConfig())

		blobs.On("Put", ctx, mock.Anything, mock.Anything, int64(4), "image/png").
			Return("http://cdn.example.com/photos/cat.png", nil).Once()
		blobs.On("Remove", ctx, mock.Anything).Return(nil).Once()

		photo, err := svc.Upload(ctx, input)

		assert.ErrorIs(t, err, domain.ErrBlobURLInvalid)
		assert.Nil(t, photo)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Insecure URL Allowed For Local Backend", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		blobs := new(mocks.BlobStore)
		cfg := newTestConfig()
		cfg.StorageBackend = "local"
		svc := service.NewPhotoService(repo, blobs, cfg)

		blobs.On("Put", ctx, mock.Anything, mock.Anything, int64(4), "image/png").
			Return("http://localhost:5050/uploads/cat.png", nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil).Once()

		photo, err := svc.Upload(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, photo)
	})

	t.Run("Metadata Insert Fails Compensates Blob", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		blobs := new(mocks.BlobStore)
		svc := service.NewPhotoService(repo, blobs, newTestConfig())

		blobs.On("Put", ctx, mock.Anything, mock.Anything, int64(4), "image/png").
			Return("https://cdn.example.com/photos/cat.png", nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
		blobs.On("Remove", ctx, mock.Anything).Return(nil).Once()

		photo, err := svc.Upload(ctx, input)

		assert.Error(t, err)
		assert.Nil(t, photo)
		blobs.AssertExpectations(t)
	})

	t.Run("No Storage Backend", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		svc := service.NewPhotoService(repo, nil, newTestConfig())

		photo, err := svc.Upload(ctx, input)

		assert.ErrorIs(t, err, domain.ErrNotConfigured)
		assert.Nil(t, photo)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPhotoService_GetByID(t *testing.T) {
	ctx := context.Background()
	photoID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		svc := service.NewPhotoService(repo, new(mocks.BlobStore), newTestConfig())

		url := "https://cdn.example.com/photos/cat.png"
		repo.On("GetByID", ctx, photoID).Return(&domain.Photo{ID: photoID, BlobURL: &url}, nil).Once()

		photo, err := svc.GetByID(ctx, photoID)

		assert.NoError(t, err)
		assert.True(t, photo.HasURL)
	})

	t.Run("Legacy Row Flagged", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		svc := service.NewPhotoService(repo, new(mocks.BlobStore), newTestConfig())

		repo.On("GetByID", ctx, photoID).Return(&domain.Photo{ID: photoID}, nil).Once()

		photo, err := svc.GetByID(ctx, photoID)

		assert.NoError(t, err)
		assert.False(t, photo.HasURL)
	})

	t.Run("Not Found", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		svc := service.NewPhotoService(repo, new(mocks.BlobStore), newTestConfig())

		repo.On("GetByID", ctx, photoID).Return(nil, sql.ErrNoRows).Once()

		photo, err := svc.GetByID(ctx, photoID)

		assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
		assert.Nil(t, photo)
	})
}

func TestPhotoService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Clamps Page Size", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		svc := service.NewPhotoService(repo, new(mocks.BlobStore), newTestConfig())

		repo.On("List", mock.Anything, mock.MatchedBy(func(p domain.ListParams) bool {
			return p.Pagination.PageSize == 100 && p.Pagination.Page == 1
		})).Return([]domain.Photo{}, int64(0), nil).Once()

		_, err := svc.List(ctx, "", domain.PaginationParams{Page: 0, PageSize: 1000})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Timeout Maps To Sentinel", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		svc := service.NewPhotoService(repo, new(mocks.BlobStore), newTestConfig())

		repo.On("List", mock.Anything, mock.Anything).
			Return(nil, int64(0), context.DeadlineExceeded).Once()

		_, err := svc.List(ctx, "", domain.DefaultPagination())

		assert.ErrorIs(t, err, domain.ErrStoreTimeout)
	})

	t.Run("Marks Rows As Having URL", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		svc := service.NewPhotoService(repo, new(mocks.BlobStore), newTestConfig())

		url := "https://cdn.example.com/photos/cat.png"
		repo.On("List", mock.Anything, mock.Anything).
			Return([]domain.Photo{{BlobURL: &url}}, int64(1), nil).Once()

		result, err := svc.List(ctx, "cat", domain.DefaultPagination())

		assert.NoError(t, err)
		assert.Len(t, result.Data, 1)
		assert.True(t, result.Data[0].HasURL)
		assert.Equal(t, int64(1), result.TotalItems)
	})
}

func TestPhotoService_Delete(t *testing.T) {
	ctx := context.Background()
	photoID := uuid.New()
	url := "https://cdn.example.com/photos/cat.png"
	key := "photos/2026/08/cat.png"

	t.Run("Success", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		blobs := new(mocks.BlobStore)
		svc := service.NewPhotoService(repo, blobs, newTestConfig())

		repo.On("GetByID", ctx, photoID).Return(&domain.Photo{ID: photoID, BlobURL: &url, StorageKey: &key}, nil).Once()
		blobs.On("Remove", ctx, key).Return(nil).Once()
		repo.On("Delete", ctx, photoID).Return(true, nil).Once()

		err := svc.Delete(ctx, photoID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		blobs.AssertExpectations(t)
	})

	t.Run("Blob Removal Failure Does Not Block Row Delete", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		blobs := new(mocks.BlobStore)
		svc := service.NewPhotoService(repo, blobs, newTestConfig())

		repo.On("GetByID", ctx, photoID).Return(&domain.Photo{ID: photoID, BlobURL: &url, StorageKey: &key}, nil).Once()
		blobs.On("Remove", ctx, key).Return(errors.New("object store down")).Once()
		repo.On("Delete", ctx, photoID).Return(true, nil).Once()

		err := svc.Delete(ctx, photoID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		svc := service.NewPhotoService(repo, new(mocks.BlobStore), newTestConfig())

		repo.On("GetByID", ctx, photoID).Return(nil, sql.ErrNoRows).Once()

		err := svc.Delete(ctx, photoID)

		assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Legacy Row Skips Blob Store", func(t *testing.T) {
		repo := new(mocks.PhotoRepository)
		blobs := new(mocks.BlobStore)
		svc := service.NewPhotoService(repo, blobs, newTestConfig())

		repo.On("GetByID", ctx, photoID).Return(&domain.Photo{ID: photoID}, nil).Once()
		repo.On("Delete", ctx, photoID).Return(true, nil).Once()

		err := svc.Delete(ctx, photoID)

		assert.NoError(t, err)
		blobs.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})
}

func TestPhotoService_DeleteLegacy(t *testing.T) {
	ctx := context.Background()

	repo := new(mocks.PhotoRepository)
	blobs := new(mocks.BlobStore)
	svc := service.NewPhotoService(repo, blobs, newTestConfig())

	repo.On("DeleteLegacy", ctx).Return(int64(3), nil).Once()

	count, err := svc.DeleteLegacy(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	blobs.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}
