package gitslotpark

import (
	"context"
	"encoding/json"

	"gamewallet/models"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CallbackRequest is the wire shape. IDs arrive as strings or numbers.
type CallbackRequest struct {
	AgentID          models.FlexibleString `json:"agentID"`
	Sign             string                `json:"sign"`
	UserID           models.FlexibleString `json:"userID"`
	Amount           decimal.Decimal       `json:"amount"`
	TransactionID    models.FlexibleString `json:"transactionID"`
	RefTransactionID models.FlexibleString `json:"refTransactionID"`
	RoundID          models.FlexibleString `json:"roundID"`
	GameID           models.FlexibleString `json:"gameID"`
	Token            string                `json:"token"`
	Currency         string                `json:"currency"`
}

func (r CallbackRequest) toService() services.CallbackRequest {
	return services.CallbackRequest{
		AgentID:          r.AgentID.String(),
		Sign:             r.Sign,
		UserID:           r.UserID.String(),
		Amount:           r.Amount,
		TransactionID:    r.TransactionID.String(),
		RefTransactionID: r.RefTransactionID.String(),
		RoundID:          r.RoundID.String(),
		GameID:           r.GameID.String(),
		Token:            r.Token,
		Currency:         r.Currency,
	}
}

type Handler struct {
	Seamless *services.SeamlessService
}

func NewHandler(seamless *services.SeamlessService) *Handler {
	return &Handler{Seamless: seamless}
}

type operation func(ctx context.Context, req services.CallbackRequest) services.CallbackResponse

// serve always answers 200; the outcome travels in the result code.
func (h *Handler) serve(c *fiber.Ctx, op operation) error {
	var req CallbackRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		logrus.WithError(err).WithField("path", c.Path()).Warn("malformed seamless callback")
		return c.JSON(services.CallbackResponse{
			Code:    services.CodeInvalidParameter,
			Message: services.CodeInvalidParameter.String(),
		})
	}
	return c.JSON(op(c.UserContext(), req.toService()))
}

func (h *Handler) Balance(c *fiber.Ctx) error      { return h.serve(c, h.Seamless.Balance) }
func (h *Handler) Authenticate(c *fiber.Ctx) error { return h.serve(c, h.Seamless.Authenticate) }
func (h *Handler) Withdraw(c *fiber.Ctx) error     { return h.serve(c, h.Seamless.Withdraw) }
func (h *Handler) Deposit(c *fiber.Ctx) error      { return h.serve(c, h.Seamless.Deposit) }
func (h *Handler) Rollback(c *fiber.Ctx) error     { return h.serve(c, h.Seamless.Rollback) }
