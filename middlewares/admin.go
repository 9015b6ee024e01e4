package middlewares

import (
	"strings"

	"gamewallet/helpers"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth validates the bearer JWT issued by /admin/login and stores the
// claims in Locals("admin").
func AdminAuth(admins *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "MISSING_TOKEN")
		}

		claims, err := admins.ParseToken(token)
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
		}

		c.Locals("admin", claims)
		return c.Next()
	}
}

// RequireRole rejects admins whose role is not listed.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("admin").(*services.AdminClaims)
		if !ok {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return helpers.JSONErrorStatus(c, fiber.StatusForbidden, "FORBIDDEN")
	}
}
