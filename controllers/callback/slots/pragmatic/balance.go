package pragmatic

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Balance(c *fiber.Ctx) error {
	return h.serve(c, "balance", []string{"userId"}, func(ctx context.Context, params map[string]string) response {
		return h.walletResponse(ctx, params["userId"])
	})
}
