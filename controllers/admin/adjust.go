package admin

import (
	"gamewallet/controllers"
	"gamewallet/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type AdjustRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// Adjust credits a positive amount and debits a negative one.
func (h *Handler) Adjust(c *fiber.Ctx) error {
	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Note == "" {
		return helpers.JSONError(c, "NOTE_REQUIRED")
	}

	playerID := c.Params("playerID")
	result, err := h.Wallets.Adjust(c.UserContext(), playerID, req.Amount.Abs(), req.Amount.IsPositive(), req.Note)
	if err != nil {
		return controllers.Fail(c, err)
	}
	h.audit(c, "wallet_adjust", playerID, req.Amount.String()+" "+req.Note)

	return helpers.JSONSuccess(c, "Balance adjusted", fiber.Map{
		"player_id": playerID,
		"balance":   result.Balance,
		"currency":  result.Currency,
		"ref_id":    result.PlatformTxID(),
	})
}
