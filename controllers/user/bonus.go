package user

import (
	"gamewallet/controllers"
	"gamewallet/helpers"

	"github.com/gofiber/fiber/v2"
)

type ClaimBonusRequest struct {
	UserCode     string `json:"user_code"`
	TemplateCode string `json:"template_code"`
}

func (h *Handler) ClaimBonus(c *fiber.Ctx) error {
	var req ClaimBonusRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	req.UserCode = normalizeUserCode(req.UserCode)
	if req.TemplateCode == "" {
		return helpers.JSONError(c, "TEMPLATE_CODE_REQUIRED")
	}

	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}
	if _, err := h.ownedWallet(c, agent, req.UserCode); err != nil {
		return controllers.Fail(c, err)
	}

	bonus, err := h.Bonuses.Claim(c.UserContext(), req.UserCode, req.TemplateCode)
	if err != nil {
		return controllers.Fail(c, err)
	}
	return helpers.JSONSuccess(c, "Bonus claimed successfully", bonus)
}

func (h *Handler) ListBonuses(c *fiber.Ctx) error {
	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}

	userCode := normalizeUserCode(c.Query("user_code"))
	if _, err := h.ownedWallet(c, agent, userCode); err != nil {
		return controllers.Fail(c, err)
	}

	bonuses, err := h.Bonuses.ListBonuses(c.UserContext(), userCode, c.Query("status"))
	if err != nil {
		return controllers.Fail(c, err)
	}
	return helpers.JSONSuccess(c, "Bonuses retrieved successfully", bonuses)
}
