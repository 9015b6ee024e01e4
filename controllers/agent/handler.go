package agent

import (
	"strings"

	"gamewallet/controllers"
	"gamewallet/helpers"
	"gamewallet/models"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	Agents  *services.AgentService
	Wallets *services.WalletService
}

func NewHandler(agents *services.AgentService, wallets *services.WalletService) *Handler {
	return &Handler{Agents: agents, Wallets: wallets}
}

type RegisterAgentRequest struct {
	Username string  `json:"username"`
	Currency string  `json:"currency"`
	GGR      float64 `json:"ggr"`
}

// RegisterAgent runs behind the master signature middleware.
func (h *Handler) RegisterAgent(c *fiber.Ctx) error {
	var req RegisterAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Currency) == "" {
		return helpers.JSONError(c, "USERNAME_AND_CURRENCY_REQUIRED")
	}

	agent, err := h.Agents.Register(c.UserContext(), req.Username, req.Currency, req.GGR)
	if err != nil {
		return controllers.Fail(c, err)
	}

	return helpers.JSONSuccess(c, "Agent registered successfully", fiber.Map{
		"username":   agent.Username,
		"agent_code": agent.AgentCode,
		"secret_key": agent.SecretKey,
		"currency":   agent.Currency,
		"ggr":        agent.GGR,
	})
}

// AgentInfo runs behind the agent credential middleware.
func (h *Handler) AgentInfo(c *fiber.Ctx) error {
	agent, ok := c.Locals("agent").(models.Agent)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}

	total, err := h.Wallets.TotalBalanceByAgent(c.UserContext(), agent.AgentCode)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_USER_BALANCE")
	}

	return helpers.JSONSuccess(c, "Agent info retrieved successfully", fiber.Map{
		"username":           agent.Username,
		"agent_code":         agent.AgentCode,
		"total_user_balance": total,
		"currency":           agent.Currency,
		"ggr":                agent.GGR,
	})
}
