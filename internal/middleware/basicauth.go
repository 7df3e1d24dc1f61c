package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"photobooth/internal/config"
)

// BasicAuth gates the admin surface with HTTP Basic Authentication.
// Unconfigured credentials are a hard 500: the gate never fails open.
// ADMIN_PASS may hold either a plain secret or a bcrypt hash.
func BasicAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminUser == "" || cfg.AdminPass == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"code":    "CONFIG_ERROR",
				"message": "Admin credentials are not configured",
			})
		}

		user, pass, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
		if !ok || !credentialsMatch(cfg, user, pass) {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="admin", charset="UTF-8"`)
			if acceptsHTML(c) {
				return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or missing credentials",
			})
		}

		return c.Next()
	}
}

func parseBasicAuth(header string) (user, pass string, ok bool) {
	if header == "" {
		return "", "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", false
	}

	creds := strings.SplitN(string(decoded), ":", 2)
	if len(creds) != 2 {
		return "", "", false
	}
	return creds[0], creds[1], true
}

func credentialsMatch(cfg *config.Config, user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.AdminUser)) == 1

	var passOK bool
	if isBcryptHash(cfg.AdminPass) {
		passOK = bcrypt.CompareHashAndPassword([]byte(cfg.AdminPass), []byte(pass)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.AdminPass)) == 1
	}

	return userOK && passOK
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func acceptsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), "text/html")
}
