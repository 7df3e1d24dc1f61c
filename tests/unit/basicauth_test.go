package unit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"photobooth/internal/config"
	"photobooth/internal/middleware"
)

func newAdminApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	admin := app.Group("/admin", middleware.BasicAuth(cfg))
	admin.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestBasicAuth(t *testing.T) {
	cfg := &config.Config{AdminUser: "admin", AdminPass: "s3cret"}

	t.Run("Missing Header Returns Challenge", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)

		resp, err := newAdminApp(cfg).Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderWWWAuthenticate), "Basic")
	})

	t.Run("Malformed Header Rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.Header.Set("Authorization", "Basic not-base64!!!")

		resp, err := newAdminApp(cfg).Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong Credentials Rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.SetBasicAuth("admin", "wrong")

		resp, err := newAdminApp(cfg).Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Correct Credentials Pass Through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.SetBasicAuth("admin", "s3cret")

		resp, err := newAdminApp(cfg).Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Bcrypt Hashed Password Accepted", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		assert.NoError(t, err)
		hashedCfg := &config.Config{AdminUser: "admin", AdminPass: string(hash)}

		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.SetBasicAuth("admin", "s3cret")

		resp, err := newAdminApp(hashedCfg).Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Unconfigured Credentials Never Fail Open", func(t *testing.T) {
		emptyCfg := &config.Config{}

		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.SetBasicAuth("anything", "anything")

		resp, err := newAdminApp(emptyCfg).Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
