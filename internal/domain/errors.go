package domain

import "errors"

var (
	ErrPhotoNotFound  = errors.New("photo not found")
	ErrInvalidMime    = errors.New("unsupported image type")
	ErrFileTooLarge   = errors.New("file exceeds the maximum allowed size")
	ErrNoFile         = errors.New("no file provided")
	ErrBlobWrite      = errors.New("blob store write failed")
	ErrBlobURLInvalid = errors.New("blob store returned an invalid url")
	ErrStoreTimeout   = errors.New("metadata store query timed out")
	ErrNotConfigured  = errors.New("storage backend is not configured")
)

// AllowedMimeTypes is the upload allow-list. image/jpg is not a real IANA
// type but some capture clients send it.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/jpg":  true,
}
