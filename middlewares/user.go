package middlewares

import (
	"gamewallet/helpers"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
)

// AgentAuth resolves X-Agent-Code / X-Secret-Key to an active agent and
// stores it in Locals("agent").
func AgentAuth(agents *services.AgentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		agentCode := c.Get("X-Agent-Code")
		secretKey := c.Get("X-Secret-Key")

		if agentCode == "" || secretKey == "" {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "AGENT_CODE_AND_SECRET_REQUIRED")
		}

		agent, err := agents.Authenticate(c.UserContext(), agentCode, secretKey)
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_AGENT_CREDENTIALS")
		}

		c.Locals("agent", *agent)
		return c.Next()
	}
}
