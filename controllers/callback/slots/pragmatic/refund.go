package pragmatic

import (
	"context"
	"errors"

	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
)

// Refund reverses the bet named by reference. Pragmatic treats a refund of an
// unknown or already refunded bet as successful.
func (h *Handler) Refund(c *fiber.Ctx) error {
	return h.serve(c, "refund", []string{"userId", "reference"}, func(ctx context.Context, params map[string]string) response {
		req := services.GameTransaction{
			Provider:         Provider,
			PlayerID:         params["userId"],
			TransactionID:    params["reference"],
			RefTransactionID: params["reference"],
		}

		result, err := h.Wallets.Rollback(ctx, req)
		switch {
		case errors.Is(err, services.ErrTransactionNotFound), errors.Is(err, services.ErrTransactionRolledBack):
			return h.walletResponse(ctx, params["userId"])
		default:
			return ledgerResponse(result, err)
		}
	})
}
