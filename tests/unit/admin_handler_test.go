package unit_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"photobooth/internal/domain"
	"photobooth/internal/handler"
	"photobooth/internal/middleware"
	"photobooth/tests/mocks"
)

func newAdminHandlerApp(svc *mocks.PhotoService) *fiber.App {
	h := handler.NewAdminHandler(svc, nil)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/admin/photos/:photoId/download", h.Download)
	app.Post("/admin/photos/:photoId/delete", h.Delete)
	return app
}

func downloadRequest(photoID uuid.UUID) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/admin/photos/"+photoID.String()+"/download", nil)
}

func TestAdminHandler_Download(t *testing.T) {
	photoID := uuid.New()

	t.Run("Sanitizes Stored Filename In Disposition Header", func(t *testing.T) {
		svc := new(mocks.PhotoService)
		// A migrated row can carry a name that was never sanitized at upload.
		photo := &domain.Photo{ID: photoID, OriginalName: `evil".png`, MimeType: "image/png", Size: 4}
		svc.On("Open", mock.Anything, photoID).
			Return(photo, io.NopCloser(strings.NewReader("data")), nil).Once()

		resp, err := newAdminHandlerApp(svc).Test(downloadRequest(photoID))

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="evil_.png"`, resp.Header.Get(fiber.HeaderContentDisposition))
		assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	})

	t.Run("Separators Stripped From Disposition Header", func(t *testing.T) {
		svc := new(mocks.PhotoService)
		photo := &domain.Photo{ID: photoID, OriginalName: `..\..\boot.png`, MimeType: "image/png", Size: 4}
		svc.On("Open", mock.Anything, photoID).
			Return(photo, io.NopCloser(strings.NewReader("data")), nil).Once()

		resp, err := newAdminHandlerApp(svc).Test(downloadRequest(photoID))

		assert.NoError(t, err)
		assert.Equal(t, `attachment; filename="....boot.png"`, resp.Header.Get(fiber.HeaderContentDisposition))
	})

	t.Run("Unknown Photo Returns Not Found", func(t *testing.T) {
		svc := new(mocks.PhotoService)
		svc.On("Open", mock.Anything, photoID).Return(nil, nil, domain.ErrPhotoNotFound).Once()

		resp, err := newAdminHandlerApp(svc).Test(downloadRequest(photoID))

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminHandler_Delete(t *testing.T) {
	photoID := uuid.New()

	t.Run("Redirects Back To Listing", func(t *testing.T) {
		svc := new(mocks.PhotoService)
		svc.On("Delete", mock.Anything, photoID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/admin/photos/"+photoID.String()+"/delete", nil)
		resp, err := newAdminHandlerApp(svc).Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/admin/photos", resp.Header.Get(fiber.HeaderLocation))
	})
}
