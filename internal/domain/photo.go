package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Photo is the single persisted entity: one row per successfully stored upload.
// BlobURL and StorageKey are nil only on legacy rows that predate blob storage.
type Photo struct {
	ID           uuid.UUID `json:"id" db:"photo_id"`
	OriginalName string    `json:"original_name" db:"original_name"`
	MimeType     string    `json:"mime_type" db:"mime_type"`
	Size         int64     `json:"size" db:"file_size"`
	BlobURL      *string   `json:"url,omitempty" db:"blob_url"`
	StorageKey   *string   `json:"-" db:"storage_key"`
	HasURL       bool      `json:"has_url" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"-" db:"updated_at"`
}

// IsLegacy reports whether the row lacks a usable blob reference.
func (p *Photo) IsLegacy() bool {
	return p.BlobURL == nil || *p.BlobURL == ""
}

type UploadInput struct {
	OriginalName string
	MimeType     string
	Size         int64
	Reader       io.Reader
}

type ListParams struct {
	Pagination PaginationParams
	Query      string
}

// PhotoStats backs the admin dashboard.
type PhotoStats struct {
	TotalPhotos  int64      `json:"total_photos" db:"total_photos"`
	TotalBytes   int64      `json:"total_bytes" db:"total_bytes"`
	LegacyRows   int64      `json:"legacy_rows" db:"legacy_rows"`
	LastUploadAt *time.Time `json:"last_upload_at" db:"last_upload_at"`
}
