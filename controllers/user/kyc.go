package user

import (
	"gamewallet/controllers"
	"gamewallet/helpers"

	"github.com/gofiber/fiber/v2"
)

type SubmitKYCRequest struct {
	UserCode     string `json:"user_code"`
	DocumentType string `json:"document_type"`
	DocumentRef  string `json:"document_ref"`
}

func (h *Handler) SubmitKYC(c *fiber.Ctx) error {
	var req SubmitKYCRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	req.UserCode = normalizeUserCode(req.UserCode)
	if req.DocumentType == "" || req.DocumentRef == "" {
		return helpers.JSONError(c, "DOCUMENT_REQUIRED")
	}

	agent, ok := currentAgent(c)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}
	if _, err := h.ownedWallet(c, agent, req.UserCode); err != nil {
		return controllers.Fail(c, err)
	}

	kyc, err := h.KYC.Submit(c.UserContext(), req.UserCode, req.DocumentType, req.DocumentRef)
	if err != nil {
		return controllers.Fail(c, err)
	}
	return helpers.JSONSuccess(c, "KYC submitted", kyc)
}
