package middlewares

import (
	"gamewallet/helpers"

	"github.com/gofiber/fiber/v2"
)

// MasterSignature guards agent provisioning. The caller proves it holds the
// master secret by sending HMAC-SHA256(secret, code+secret) as "signature".
func MasterSignature(masterCode, masterSecret string) fiber.Handler {
	expected := helpers.HMACSHA256Hex(masterSecret, masterCode+masterSecret)

	return func(c *fiber.Ctx) error {
		var body struct {
			Signature string `json:"signature"`
		}

		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": 0,
				"msg":    "INVALID_JSON",
			})
		}

		if masterSecret == "" || !helpers.SignEqual(expected, body.Signature) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": 0,
				"msg":    "INVALID_SIGNATURE",
			})
		}

		return c.Next()
	}
}
