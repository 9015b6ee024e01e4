package user

import (
	"gamewallet/controllers"
	"gamewallet/helpers"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
)

// Transactions pages through a player's ledger: GET /user/transactions?user_code=&type=&page=&limit=
func (h *Handler) Transactions(c *fiber.Ctx) error {
	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}

	userCode := normalizeUserCode(c.Query("user_code"))
	if userCode == "" {
		return helpers.JSONError(c, "USER_CODE_REQUIRED")
	}
	if _, err := h.ownedWallet(c, agent, userCode); err != nil {
		return controllers.Fail(c, err)
	}

	page, limit := helpers.PageParams(c)
	rows, total, err := h.Wallets.ListTransactions(c.UserContext(), services.TransactionFilter{
		PlayerID: userCode,
		Type:     c.Query("type"),
		Provider: c.Query("provider"),
	}, page, limit)
	if err != nil {
		return controllers.Fail(c, err)
	}

	return helpers.JSONSuccess(c, "Transactions retrieved successfully", helpers.Paginate(rows, total, page, limit))
}
