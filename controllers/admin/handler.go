package admin

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gamewallet/controllers"
	"gamewallet/helpers"
	"gamewallet/models"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the back-office API. Routes other than Login run behind
// middlewares.AdminAuth, which stores *services.AdminClaims in Locals("admin").
type Handler struct {
	Admins  *services.AdminService
	Wallets *services.WalletService
	Bonuses *services.BonusService
	KYC     *services.KYCService
}

func NewHandler(admins *services.AdminService, wallets *services.WalletService, bonuses *services.BonusService, kyc *services.KYCService) *Handler {
	return &Handler{Admins: admins, Wallets: wallets, Bonuses: bonuses, KYC: kyc}
}

func claims(c *fiber.Ctx) *services.AdminClaims {
	if cl, ok := c.Locals("admin").(*services.AdminClaims); ok {
		return cl
	}
	return &services.AdminClaims{}
}

// audit writes a security log line for a mutating admin action.
func (h *Handler) audit(c *fiber.Ctx, action, target, detail string) {
	cl := claims(c)
	h.Admins.LogAction(c.UserContext(), models.SecurityLog{
		AdminID:  cl.AdminID,
		Username: cl.Username,
		Action:   action,
		Target:   target,
		Detail:   detail,
		IP:       c.IP(),
	})
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	token, account, err := h.Admins.Login(c.UserContext(), req.Username, req.Password, c.IP())
	if err != nil {
		if errors.Is(err, services.ErrJWTNotConfigured) {
			return helpers.JSONErrorStatus(c, fiber.StatusServiceUnavailable, "ADMIN_LOGIN_DISABLED")
		}
		return controllers.Fail(c, err)
	}

	return helpers.JSONSuccess(c, "Login successful", fiber.Map{
		"token":    token,
		"username": account.Username,
		"role":     account.Role,
	})
}

func (h *Handler) GetWallet(c *fiber.Ctx) error {
	wallet, err := h.Wallets.Find(c.UserContext(), c.Params("playerID"))
	if err != nil {
		return controllers.Fail(c, err)
	}
	return helpers.JSONSuccess(c, "Wallet retrieved successfully", wallet)
}

type StatusRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) SetWalletStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	playerID := c.Params("playerID")
	if err := h.Wallets.SetStatus(c.UserContext(), playerID, req.Active); err != nil {
		return controllers.Fail(c, err)
	}
	h.audit(c, "wallet_status", playerID, fmt.Sprintf("active=%t", req.Active))

	return helpers.JSONSuccess(c, "Wallet status updated", fiber.Map{"player_id": playerID, "active": req.Active})
}

type VIPRequest struct {
	Level int `json:"level"`
}

func (h *Handler) SetVIPLevel(c *fiber.Ctx) error {
	var req VIPRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	playerID := c.Params("playerID")
	if err := h.Wallets.SetVIPLevel(c.UserContext(), playerID, req.Level); err != nil {
		return controllers.Fail(c, err)
	}
	h.audit(c, "wallet_vip", playerID, "level="+strconv.Itoa(req.Level))

	return helpers.JSONSuccess(c, "VIP level updated", fiber.Map{"player_id": playerID, "vip_level": req.Level})
}

func (h *Handler) Transactions(c *fiber.Ctx) error {
	filter := services.TransactionFilter{
		PlayerID:  c.Query("player_id"),
		AgentCode: c.Query("agent_code"),
		Type:      c.Query("type"),
		Provider:  c.Query("provider"),
	}
	if from, err := time.Parse(time.DateOnly, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.DateOnly, c.Query("to")); err == nil {
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	page, limit := helpers.PageParams(c)
	rows, total, err := h.Wallets.ListTransactions(c.UserContext(), filter, page, limit)
	if err != nil {
		return controllers.Fail(c, err)
	}
	return helpers.JSONSuccess(c, "Transactions retrieved successfully", helpers.Paginate(rows, total, page, limit))
}

func (h *Handler) SecurityLogs(c *fiber.Ctx) error {
	page, limit := helpers.PageParams(c)
	rows, total, err := h.Admins.SecurityLogs(c.UserContext(), page, limit)
	if err != nil {
		return controllers.Fail(c, err)
	}
	return helpers.JSONSuccess(c, "Security logs retrieved successfully", helpers.Paginate(rows, total, page, limit))
}
