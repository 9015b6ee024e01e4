package pragmatic

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Result credits the round's win.
func (h *Handler) Result(c *fiber.Ctx) error {
	required := []string{"userId", "gameId", "roundId", "amount", "reference"}
	return h.serve(c, "result", required, func(ctx context.Context, params map[string]string) response {
		amount, ok := parseAmount(params["amount"])
		if !ok {
			return failure(errBadParameters)
		}
		return ledgerResponse(h.Wallets.Win(ctx, gameTransaction(params, amount)))
	})
}
