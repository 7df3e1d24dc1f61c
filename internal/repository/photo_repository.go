package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"photobooth/internal/domain"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Photo, int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteLegacy(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*domain.PhotoStats, error)
}

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (photo_id, original_name, mime_type, file_size, blob_url, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		photo.ID, photo.OriginalName, photo.MimeType, photo.Size,
		photo.BlobURL, photo.StorageKey,
	).Scan(&photo.CreatedAt, &photo.UpdatedAt)
}

func (r *photoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	var photo domain.Photo
	query := `SELECT * FROM photos WHERE photo_id = $1`
	err := r.db.GetContext(ctx, &photo, query, id)
	return &photo, err
}

// List returns one page of non-legacy photos, newest first, optionally
// filtered by a case-insensitive substring match on original_name.
func (r *photoRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Photo, int64, error) {
	params.Pagination.Validate()

	var total int64
	var photos []domain.Photo

	search := strings.TrimSpace(params.Query)
	if search != "" {
		pattern := "%" + escapeLike(search) + "%"

		countQuery := `
			SELECT COUNT(*) FROM photos
			WHERE blob_url IS NOT NULL AND blob_url <> ''
				AND original_name ILIKE $1 ESCAPE '\'`
		if err := r.db.GetContext(ctx, &total, countQuery, pattern); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM photos
			WHERE blob_url IS NOT NULL AND blob_url <> ''
				AND original_name ILIKE $1 ESCAPE '\'
			ORDER BY created_at DESC, photo_id DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &photos, query, pattern, params.Pagination.PageSize, params.Pagination.Offset())
		return photos, total, err
	}

	countQuery := `SELECT COUNT(*) FROM photos WHERE blob_url IS NOT NULL AND blob_url <> ''`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM photos
		WHERE blob_url IS NOT NULL AND blob_url <> ''
		ORDER BY created_at DESC, photo_id DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &photos, query, params.Pagination.PageSize, params.Pagination.Offset())
	return photos, total, err
}

func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE photo_id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *photoRepository) DeleteLegacy(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE blob_url IS NULL OR blob_url = ''`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *photoRepository) Stats(ctx context.Context) (*domain.PhotoStats, error) {
	var stats domain.PhotoStats
	query := `
		SELECT
			COUNT(*) FILTER (WHERE blob_url IS NOT NULL AND blob_url <> '') AS total_photos,
			COALESCE(SUM(file_size) FILTER (WHERE blob_url IS NOT NULL AND blob_url <> ''), 0) AS total_bytes,
			COUNT(*) FILTER (WHERE blob_url IS NULL OR blob_url = '') AS legacy_rows,
			MAX(created_at) AS last_upload_at
		FROM photos`
	err := r.db.GetContext(ctx, &stats, query)
	return &stats, err
}

// escapeLike neutralizes LIKE wildcards in user input so a literal % or _
// in a search term matches itself.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
