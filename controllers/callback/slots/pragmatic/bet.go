package pragmatic

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Bet debits the stake. A replayed reference answers with the original transaction.
func (h *Handler) Bet(c *fiber.Ctx) error {
	required := []string{"userId", "gameId", "roundId", "amount", "reference"}
	return h.serve(c, "bet", required, func(ctx context.Context, params map[string]string) response {
		amount, ok := parseAmount(params["amount"])
		if !ok {
			return failure(errBadParameters)
		}
		return ledgerResponse(h.Wallets.Bet(ctx, gameTransaction(params, amount)))
	})
}
