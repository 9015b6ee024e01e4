package user

import (
	"time"

	"gamewallet/controllers"
	"gamewallet/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type LimitsRequest struct {
	UserCode          string          `json:"user_code"`
	DailyDepositLimit decimal.Decimal `json:"daily_deposit_limit"`
	DailyLossLimit    decimal.Decimal `json:"daily_loss_limit"`
}

func (h *Handler) SetLimits(c *fiber.Ctx) error {
	var req LimitsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	req.UserCode = normalizeUserCode(req.UserCode)

	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}
	if _, err := h.ownedWallet(c, agent, req.UserCode); err != nil {
		return controllers.Fail(c, err)
	}

	if err := h.Wallets.SetLimits(c.UserContext(), req.UserCode, req.DailyDepositLimit, req.DailyLossLimit); err != nil {
		return controllers.Fail(c, err)
	}

	return helpers.JSONSuccess(c, "Limits updated successfully", fiber.Map{
		"user_code":           req.UserCode,
		"daily_deposit_limit": req.DailyDepositLimit,
		"daily_loss_limit":    req.DailyLossLimit,
	})
}

type SelfExcludeRequest struct {
	UserCode string `json:"user_code"`
	Days     int    `json:"days"`
}

func (h *Handler) SelfExclude(c *fiber.Ctx) error {
	var req SelfExcludeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	req.UserCode = normalizeUserCode(req.UserCode)
	if req.Days <= 0 {
		return helpers.JSONError(c, "DAYS_REQUIRED")
	}

	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}
	if _, err := h.ownedWallet(c, agent, req.UserCode); err != nil {
		return controllers.Fail(c, err)
	}

	until := time.Now().Add(time.Duration(req.Days) * 24 * time.Hour)
	wallet, err := h.Wallets.SelfExclude(c.UserContext(), req.UserCode, until)
	if err != nil {
		return controllers.Fail(c, err)
	}

	return helpers.JSONSuccess(c, "Self-exclusion applied", fiber.Map{
		"user_code":           wallet.PlayerID,
		"self_excluded_until": wallet.SelfExcludedUntil,
	})
}
