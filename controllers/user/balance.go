package user

import (
	"gamewallet/controllers"
	"gamewallet/helpers"

	"github.com/gofiber/fiber/v2"
)

type CheckBalanceRequest struct {
	UserCode string `json:"user_code"`
}

func (h *Handler) CheckUserBalance(c *fiber.Ctx) error {
	var req CheckBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	req.UserCode = normalizeUserCode(req.UserCode)
	if req.UserCode == "" {
		return helpers.JSONError(c, "USER_CODE_REQUIRED")
	}

	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}

	wallet, err := h.ownedWallet(c, agent, req.UserCode)
	if err != nil {
		return controllers.Fail(c, err)
	}

	return helpers.JSONSuccess(c, "Balance retrieved successfully", fiber.Map{
		"user_code":     wallet.PlayerID,
		"balance":       wallet.Balance,
		"bonus_balance": wallet.BonusBalance,
		"currency":      wallet.Currency,
		"is_active":     wallet.IsActive,
	})
}
