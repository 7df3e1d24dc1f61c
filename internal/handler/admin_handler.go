package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"photobooth/internal/domain"
	"photobooth/internal/pkg/sanitize"
	"photobooth/internal/service"
	"photobooth/internal/storage"
)

type AdminHandler struct {
	photoService     service.PhotoService
	dashboardService service.DashboardService
}

func NewAdminHandler(photoService service.PhotoService, dashboardService service.DashboardService) *AdminHandler {
	return &AdminHandler{
		photoService:     photoService,
		dashboardService: dashboardService,
	}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Failed to load stats")
	}

	return renderHTML(c, dashboardTemplate, fiber.Map{
		"Stats":     stats,
		"TotalSize": formatBytes(stats.TotalBytes),
	})
}

func (h *AdminHandler) Photos(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	query := c.Query("q")

	result, err := h.photoService.List(c.Context(), query, params)
	if err != nil {
		if errors.Is(err, domain.ErrStoreTimeout) {
			return renderError(c, fiber.StatusGatewayTimeout, "Photo listing timed out")
		}
		return renderError(c, fiber.StatusInternalServerError, "Failed to load photos")
	}

	return renderHTML(c, photosTemplate, fiber.Map{
		"Photos":   result.Data,
		"Query":    query,
		"Page":     result.Page,
		"PrevPage": result.Page - 1,
		"NextPage": result.Page + 1,
		"Total":    result.TotalItems,
		"Pages":    result.TotalPages,
		"HasNext":  result.HasNext,
		"HasPrev":  result.HasPrev,
	})
}

// Download streams the stored object back with an attachment disposition.
// The filename was sanitized at upload time but is sanitized again here since
// legacy rows predate that guarantee.
func (h *AdminHandler) Download(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, "Invalid photo ID")
	}

	photo, rc, err := h.photoService.Open(c.Context(), photoID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPhotoNotFound):
			return renderError(c, fiber.StatusNotFound, "Photo not found")
		case errors.Is(err, storage.ErrInvalidKey):
			return renderError(c, fiber.StatusForbidden, "Refusing to read outside the uploads directory")
		default:
			return renderError(c, fiber.StatusInternalServerError, "Failed to read stored object")
		}
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, sanitize.Filename(photo.OriginalName)))
	c.Set(fiber.HeaderContentType, photo.MimeType)
	return c.SendStream(rc, int(photo.Size))
}

func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, "Invalid photo ID")
	}

	if err := h.photoService.Delete(c.Context(), photoID); err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return renderError(c, fiber.StatusNotFound, "Photo not found")
		}
		return renderError(c, fiber.StatusInternalServerError, "Failed to delete photo")
	}

	return c.Redirect("/admin/photos", fiber.StatusSeeOther)
}

// CleanupLegacy bulk-deletes rows without a blob reference. There is nothing
// to remove from the blob store for these rows.
func (h *AdminHandler) CleanupLegacy(c *fiber.Ctx) error {
	count, err := h.photoService.DeleteLegacy(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted_count": count})
}

func renderHTML(c *fiber.Ctx, tpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func renderError(c *fiber.Ctx, status int, message string) error {
	if acceptsJSON(c) {
		return fiber.NewError(status, message)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString("<!doctype html><title>Error</title><h1>" + template.HTMLEscapeString(message) + "</h1>")
}

func acceptsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
