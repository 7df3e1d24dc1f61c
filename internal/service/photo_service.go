package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"

	"photobooth/internal/config"
	"photobooth/internal/domain"
	"photobooth/internal/repository"
	"photobooth/internal/storage"
)

const listTimeout = 5 * time.Second

type PhotoService interface {
	StorageReady() bool
	Upload(ctx context.Context, input domain.UploadInput) (*domain.Photo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	List(ctx context.Context, query string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Photo], error)
	Open(ctx context.Context, id uuid.UUID) (*domain.Photo, io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteLegacy(ctx context.Context) (int64, error)
}

type photoService struct {
	photoRepo repository.PhotoRepository
	blobs     storage.BlobStore
	cfg       *config.Config
}

func NewPhotoService(photoRepo repository.PhotoRepository, blobs storage.BlobStore, cfg *config.Config) PhotoService {
	return &photoService{
		photoRepo: photoRepo,
		blobs:     blobs,
		cfg:       cfg,
	}
}

// StorageReady reports whether a blob backend was wired at startup.
func (s *photoService) StorageReady() bool {
	return s.blobs != nil
}

// Upload writes the blob first and inserts the metadata row only after the
// blob write is confirmed and its URL validated. A blob write that fails, or
// returns a bad URL, must never produce a row; a row insert that fails
// triggers a best-effort removal of the just-written blob.
func (s *photoService) Upload(ctx context.Context, input domain.UploadInput) (*domain.Photo, error) {
	if s.blobs == nil {
		return nil, domain.ErrNotConfigured
	}

	photoID := uuid.New()
	key := fmt.Sprintf("photos/%s/%s-%s", time.Now().Format("2006/01"), photoID.String(), input.OriginalName)

	mimeType := input.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	blobURL, err := s.blobs.Put(ctx, key, input.Reader, input.Size, mimeType)
	if err != nil {
		log.Printf("blob put failed for %s: %v", key, err)
		return nil, domain.ErrBlobWrite
	}

	if err := s.validateBlobURL(blobURL); err != nil {
		log.Printf("blob store returned unusable url %q for %s: %v", blobURL, key, err)
		if rmErr := s.blobs.Remove(ctx, key); rmErr != nil {
			log.Printf("orphaned blob %s could not be removed: %v", key, rmErr)
		}
		return nil, domain.ErrBlobURLInvalid
	}

	photo := &domain.Photo{
		ID:           photoID,
		OriginalName: input.OriginalName,
		MimeType:     mimeType,
		Size:         input.Size,
		BlobURL:      &blobURL,
		StorageKey:   &key,
		HasURL:       true,
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		if rmErr := s.blobs.Remove(ctx, key); rmErr != nil {
			log.Printf("orphaned blob %s could not be removed: %v", key, rmErr)
		}
		return nil, err
	}

	return photo, nil
}

func (s *photoService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	photo.HasURL = !photo.IsLegacy()
	return photo, nil
}

func (s *photoService) List(ctx context.Context, query string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Photo], error) {
	params.Validate()

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	photos, total, err := s.photoRepo.List(ctx, domain.ListParams{Pagination: params, Query: query})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.PaginatedResponse[domain.Photo]{}, domain.ErrStoreTimeout
		}
		return domain.PaginatedResponse[domain.Photo]{}, err
	}

	for i := range photos {
		photos[i].HasURL = true
	}

	return domain.NewPaginatedResponse(photos, params.Page, params.PageSize, total), nil
}

// Open resolves a photo and returns a reader over its stored bytes.
func (s *photoService) Open(ctx context.Context, id uuid.UUID) (*domain.Photo, io.ReadCloser, error) {
	photo, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if photo.StorageKey == nil || *photo.StorageKey == "" {
		return nil, nil, domain.ErrPhotoNotFound
	}
	if s.blobs == nil {
		return nil, nil, domain.ErrNotConfigured
	}

	rc, err := s.blobs.Open(ctx, *photo.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return photo, rc, nil
}

// Delete removes the blob object best-effort, then the metadata row. A failed
// blob removal is logged and never blocks the row deletion: a dangling blob
// is recoverable, a row pointing at nothing is not.
func (s *photoService) Delete(ctx context.Context, id uuid.UUID) error {
	photo, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if photo.StorageKey != nil && *photo.StorageKey != "" && s.blobs != nil {
		if err := s.blobs.Remove(ctx, *photo.StorageKey); err != nil {
			log.Printf("blob delete failed for %s (continuing with row delete): %v", *photo.StorageKey, err)
		}
	}

	deleted, err := s.photoRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPhotoNotFound
	}
	return nil
}

// DeleteLegacy removes all rows without a blob reference. There is no blob
// to clean up for these rows by construction.
func (s *photoService) DeleteLegacy(ctx context.Context) (int64, error) {
	return s.photoRepo.DeleteLegacy(ctx)
}

func (s *photoService) validateBlobURL(blobURL string) error {
	if blobURL == "" {
		return fmt.Errorf("empty url")
	}
	parsed, err := url.Parse(blobURL)
	if err != nil {
		return err
	}
	if parsed.Host == "" {
		return fmt.Errorf("missing host")
	}
	switch parsed.Scheme {
	case "https":
		return nil
	case "http":
		if s.cfg.AllowInsecureBlobURL() {
			return nil
		}
		return fmt.Errorf("insecure scheme %q", parsed.Scheme)
	default:
		return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
}
