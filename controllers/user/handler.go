package user

import (
	"strings"

	"gamewallet/models"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the operator-facing player API. Every route runs behind the
// agent credential middleware, which stores the agent in Locals("agent").
type Handler struct {
	Wallets  *services.WalletService
	Sessions *services.SessionService
	Bonuses  *services.BonusService
	KYC      *services.KYCService
}

func NewHandler(wallets *services.WalletService, sessions *services.SessionService, bonuses *services.BonusService, kyc *services.KYCService) *Handler {
	return &Handler{Wallets: wallets, Sessions: sessions, Bonuses: bonuses, KYC: kyc}
}

// PlayerID namespaces an operator's user code under its agent.
func PlayerID(agentCode, userCode string) string {
	return strings.ToLower(agentCode) + "_" + normalizeUserCode(userCode)
}

// normalizeUserCode maps a full player code onto the form PlayerID produces.
func normalizeUserCode(userCode string) string {
	return strings.ToLower(strings.TrimSpace(userCode))
}

func owns(agent models.Agent, playerID string) bool {
	return strings.HasPrefix(playerID, strings.ToLower(agent.AgentCode)+"_")
}

func currentAgent(c *fiber.Ctx) (models.Agent, bool) {
	agent, ok := c.Locals("agent").(models.Agent)
	return agent, ok
}

// ownedWallet loads a wallet and hides wallets that belong to another agent.
func (h *Handler) ownedWallet(c *fiber.Ctx, agent models.Agent, playerID string) (*models.Wallet, error) {
	if !owns(agent, playerID) {
		return nil, services.ErrWalletNotFound
	}
	wallet, err := h.Wallets.Find(c.UserContext(), playerID)
	if err != nil {
		return nil, err
	}
	if wallet.AgentCode != agent.AgentCode {
		return nil, services.ErrWalletNotFound
	}
	return wallet, nil
}
