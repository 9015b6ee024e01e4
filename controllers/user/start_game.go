package user

import (
	"gamewallet/controllers"
	"gamewallet/helpers"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
)

type StartGameRequest struct {
	UserCode   string `json:"user_code"`
	ProviderID string `json:"provider_id"`
	GameID     string `json:"game_id"`
	Mode       string `json:"mode"`
	Currency   string `json:"currency"`
	Language   string `json:"language"`
	Platform   string `json:"platform"`
}

func (h *Handler) LaunchGame(c *fiber.Ctx) error {
	var req StartGameRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	req.UserCode = normalizeUserCode(req.UserCode)

	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}
	if !owns(agent, req.UserCode) {
		return controllers.Fail(c, services.ErrWalletNotFound)
	}

	result, err := h.Sessions.StartGame(c.UserContext(), services.StartGameRequest{
		PlayerID:   req.UserCode,
		ProviderID: req.ProviderID,
		GameID:     req.GameID,
		Mode:       req.Mode,
		Currency:   req.Currency,
		Language:   req.Language,
		Platform:   req.Platform,
	})
	if err != nil {
		return controllers.Fail(c, err)
	}

	data := fiber.Map{"launch_url": result.LaunchURL}
	if result.Session != nil {
		data["token"] = result.Session.SID
		data["expires_at"] = result.Session.ExpiresAt
	}
	return helpers.JSONSuccess(c, "Game launched successfully", data)
}
