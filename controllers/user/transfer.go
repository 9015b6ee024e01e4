package user

import (
	"errors"

	"gamewallet/controllers"
	"gamewallet/helpers"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	UserCode  string          `json:"user_code"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	Note      string          `json:"note"`
}

// TransferBalance moves cashier money in (positive amount) or out (negative amount).
func (h *Handler) TransferBalance(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	req.UserCode = normalizeUserCode(req.UserCode)
	if req.UserCode == "" || req.Amount.IsZero() {
		return helpers.JSONError(c, "USER_CODE_AND_AMOUNT_REQUIRED")
	}

	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}

	wallet, err := h.ownedWallet(c, agent, req.UserCode)
	if err != nil && !(errors.Is(err, services.ErrWalletNotFound) && owns(agent, req.UserCode) && req.Amount.IsPositive()) {
		return controllers.Fail(c, err)
	}

	cashier := services.CashierRequest{
		PlayerID:  req.UserCode,
		AgentCode: agent.AgentCode,
		Currency:  agent.Currency,
		Amount:    req.Amount.Abs(),
		Reference: req.Reference,
		Note:      req.Note,
	}
	if wallet != nil {
		cashier.Country = wallet.Country
		cashier.Currency = wallet.Currency
	}

	trxType := "deposit"
	var result *services.LedgerResult
	if req.Amount.IsPositive() {
		result, err = h.Wallets.CashierDeposit(c.UserContext(), cashier)
	} else {
		trxType = "withdraw"
		result, err = h.Wallets.CashierWithdraw(c.UserContext(), cashier)
	}
	if err != nil {
		return controllers.Fail(c, err)
	}

	return helpers.JSONSuccess(c, "Balance updated successfully", fiber.Map{
		"user_code": req.UserCode,
		"type":      trxType,
		"balance":   result.Balance,
		"currency":  result.Currency,
		"ref_id":    result.PlatformTxID(),
	})
}
