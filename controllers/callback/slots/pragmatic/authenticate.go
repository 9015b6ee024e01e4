package pragmatic

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Authenticate resolves the launch token to its player.
func (h *Handler) Authenticate(c *fiber.Ctx) error {
	return h.serve(c, "authenticate", []string{"token"}, func(ctx context.Context, params map[string]string) response {
		session, err := h.Sessions.Resolve(ctx, params["token"])
		if err != nil {
			return failure(errorCode(err))
		}
		if session.ProviderID != "" && session.ProviderID != "pragmatic" {
			return failure(errBadToken)
		}
		return h.walletResponse(ctx, session.PlayerID)
	})
}
