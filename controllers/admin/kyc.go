package admin

import (
	"strconv"

	"gamewallet/controllers"
	"gamewallet/helpers"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListKYC(c *fiber.Ctx) error {
	page, limit := helpers.PageParams(c)
	rows, total, err := h.KYC.List(c.UserContext(), c.Query("status"), page, limit)
	if err != nil {
		return controllers.Fail(c, err)
	}
	return helpers.JSONSuccess(c, "KYC requests retrieved successfully", helpers.Paginate(rows, total, page, limit))
}

func (h *Handler) ApproveKYC(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_ID")
	}

	req, err := h.KYC.Approve(c.UserContext(), uint(id), claims(c).Username)
	if err != nil {
		return controllers.Fail(c, err)
	}
	h.audit(c, "kyc_approve", req.PlayerID, "request="+strconv.Itoa(id))

	return helpers.JSONSuccess(c, "KYC approved", req)
}

type RejectKYCRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) RejectKYC(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_ID")
	}

	var body RejectKYCRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	req, err := h.KYC.Reject(c.UserContext(), uint(id), claims(c).Username, body.Reason)
	if err != nil {
		return controllers.Fail(c, err)
	}
	h.audit(c, "kyc_reject", req.PlayerID, body.Reason)

	return helpers.JSONSuccess(c, "KYC rejected", req)
}
