package admin

import (
	"fmt"

	"gamewallet/controllers"
	"gamewallet/helpers"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateTemplateRequest struct {
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount"`
	WageringMultiplier decimal.Decimal `json:"wagering_multiplier"`
	DurationHours      int             `json:"duration_hours"`
	MinVIPLevel        int             `json:"min_vip_level"`
}

func (h *Handler) CreateBonusTemplate(c *fiber.Ctx) error {
	var req CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	tpl, err := h.Bonuses.CreateTemplate(c.UserContext(), services.CreateTemplateRequest{
		Code:               req.Code,
		Name:               req.Name,
		Amount:             req.Amount,
		WageringMultiplier: req.WageringMultiplier,
		DurationHours:      req.DurationHours,
		MinVIPLevel:        req.MinVIPLevel,
	})
	if err != nil {
		return controllers.Fail(c, err)
	}
	h.audit(c, "bonus_template_create", tpl.Code, tpl.Amount.String())

	return helpers.JSONSuccess(c, "Bonus template created", tpl)
}

func (h *Handler) ListBonusTemplates(c *fiber.Ctx) error {
	templates, err := h.Bonuses.ListTemplates(c.UserContext(), c.QueryBool("active"))
	if err != nil {
		return controllers.Fail(c, err)
	}
	return helpers.JSONSuccess(c, "Bonus templates retrieved successfully", templates)
}

type ToggleTemplateRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) ToggleBonusTemplate(c *fiber.Ctx) error {
	var req ToggleTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	code := c.Params("code")
	if err := h.Bonuses.SetTemplateActive(c.UserContext(), code, req.Active); err != nil {
		return controllers.Fail(c, err)
	}
	h.audit(c, "bonus_template_toggle", code, fmt.Sprintf("active=%t", req.Active))

	return helpers.JSONSuccess(c, "Bonus template updated", fiber.Map{"code": code, "active": req.Active})
}
