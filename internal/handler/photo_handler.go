package handler

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"photobooth/internal/config"
	"photobooth/internal/domain"
	"photobooth/internal/middleware"
	"photobooth/internal/pkg/sanitize"
	"photobooth/internal/service"
)

type PhotoHandler struct {
	photoService service.PhotoService
	maxBytes     int64
}

func NewPhotoHandler(photoService service.PhotoService, cfg *config.Config) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		maxBytes:     cfg.MaxFileBytes(),
	}
}

// Upload consumes a multipart body incrementally: parts other than "file" are
// drained without buffering and the file part is aborted the moment it runs
// past the configured size cap.
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	// Fast-fail before consuming any of the stream.
	if !h.photoService.StorageReady() {
		return fiber.NewError(fiber.StatusInternalServerError, "Storage backend is not configured")
	}

	mediaType, mtParams, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
	if err != nil || mediaType != fiber.MIMEMultipartForm {
		return middleware.BadRequest("Content-Type must be multipart/form-data")
	}
	boundary := mtParams["boundary"]
	if boundary == "" {
		return middleware.BadRequest("Malformed multipart request")
	}

	input, err := readFilePart(multipart.NewReader(c.Context().RequestBodyStream(), boundary), h.maxBytes)
	if err != nil {
		return uploadError(err)
	}

	photo, err := h.photoService.Upload(c.Context(), *input)
	if err != nil {
		return uploadError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

func (h *PhotoHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	query := strings.TrimSpace(c.Query("q"))

	result, err := h.photoService.List(c.Context(), query, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return middleware.BadRequest("Invalid photo ID")
	}

	photo, err := h.photoService.GetByID(c.Context(), photoID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(photo)
}

// readFilePart walks multipart parts until the "file" field, enforcing the
// MIME allow-list before the body is read and the byte cap while it is read.
func readFilePart(reader *multipart.Reader, maxBytes int64) (*domain.UploadInput, error) {
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrNoFile
		}
		if err != nil {
			return nil, middleware.BadRequest("Malformed multipart request")
		}

		if part.FormName() != "file" {
			io.Copy(io.Discard, part)
			part.Close()
			continue
		}

		mimeType := normalizeMime(part.Header.Get("Content-Type"))
		if mimeType != "" && !domain.AllowedMimeTypes[mimeType] {
			part.Close()
			return nil, domain.ErrInvalidMime
		}

		var buf bytes.Buffer
		n, err := io.CopyN(&buf, part, maxBytes+1)
		part.Close()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, middleware.BadRequest("Failed to read file")
		}
		if n > maxBytes {
			return nil, domain.ErrFileTooLarge
		}
		if n == 0 {
			return nil, domain.ErrNoFile
		}

		return &domain.UploadInput{
			OriginalName: sanitize.Filename(part.FileName()),
			MimeType:     mimeType,
			Size:         n,
			Reader:       bytes.NewReader(buf.Bytes()),
		}, nil
	}
}

func normalizeMime(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

func uploadError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidMime),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrNoFile):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		return fiber.NewError(fiber.StatusInternalServerError, "Storage backend is not configured")
	case errors.Is(err, domain.ErrBlobWrite), errors.Is(err, domain.ErrBlobURLInvalid):
		return fiber.NewError(fiber.StatusInternalServerError, "Upload failed")
	default:
		return err
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 50); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
