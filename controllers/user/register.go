package user

import (
	"strings"

	"gamewallet/controllers"
	"gamewallet/helpers"
	"gamewallet/models"

	"github.com/gofiber/fiber/v2"
)

type RegisterUserRequest struct {
	UserCode string `json:"user_code"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
}

func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}
	if strings.TrimSpace(req.UserCode) == "" {
		return helpers.JSONError(c, "USER_CODE_REQUIRED")
	}

	country := strings.ToUpper(strings.TrimSpace(req.Country))
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	supported, allowed := helpers.CurrencyAllowed(country, currency)
	if !supported {
		return helpers.JSONError(c, "UNSUPPORTED_COUNTRY")
	}
	if !allowed {
		return helpers.JSONError(c, "INVALID_CURRENCY_FOR_COUNTRY")
	}

	wallet := models.Wallet{
		PlayerID:  PlayerID(agent.AgentCode, req.UserCode),
		AgentCode: agent.AgentCode,
		Country:   country,
		Currency:  currency,
	}
	if err := h.Wallets.CreateWallet(c.UserContext(), &wallet); err != nil {
		return controllers.Fail(c, err)
	}

	return helpers.JSONSuccess(c, "User registered successfully", fiber.Map{
		"user_code":  wallet.PlayerID,
		"agent_code": wallet.AgentCode,
		"country":    wallet.Country,
		"currency":   wallet.Currency,
	})
}
