package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// SecretTokenHeader is set by Telegram on every webhook call when the
// webhook was registered with a secret_token
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// ValidateTelegramSecret rejects webhook calls that do not carry secret
func ValidateTelegramSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(SecretTokenHeader)
		if got == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing secret token",
			})
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid secret token",
			})
		}

		return c.Next()
	}
}
