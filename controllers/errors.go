package controllers

import (
	"errors"

	"gamewallet/helpers"
	"gamewallet/providers"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var errorMessages = []struct {
	err     error
	status  int
	message string
}{
	{services.ErrWalletNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{services.ErrWalletExists, fiber.StatusConflict, "USER_ALREADY_EXISTS"},
	{services.ErrWalletInactive, fiber.StatusForbidden, "USER_INACTIVE"},
	{services.ErrSelfExcluded, fiber.StatusForbidden, "USER_SELF_EXCLUDED"},
	{services.ErrInsufficientFunds, fiber.StatusBadRequest, "INSUFFICIENT_USER_BALANCE"},
	{services.ErrInvalidAmount, fiber.StatusBadRequest, "INVALID_AMOUNT"},
	{services.ErrLimitExceeded, fiber.StatusBadRequest, "LIMIT_EXCEEDED"},
	{services.ErrKYCRequired, fiber.StatusForbidden, "KYC_REQUIRED"},
	{services.ErrDuplicateTransaction, fiber.StatusConflict, "DUPLICATE_TRANSACTION"},
	{services.ErrTransactionNotFound, fiber.StatusNotFound, "TRANSACTION_NOT_FOUND"},
	{services.ErrAgentExists, fiber.StatusConflict, "AGENT_ALREADY_EXISTS"},
	{services.ErrAgentNotFound, fiber.StatusNotFound, "AGENT_NOT_FOUND"},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{services.ErrTemplateNotFound, fiber.StatusNotFound, "BONUS_NOT_FOUND"},
	{services.ErrTemplateExists, fiber.StatusConflict, "BONUS_ALREADY_EXISTS"},
	{services.ErrBonusNotEligible, fiber.StatusForbidden, "BONUS_NOT_ELIGIBLE"},
	{services.ErrBonusAlreadyActive, fiber.StatusConflict, "BONUS_ALREADY_ACTIVE"},
	{services.ErrKYCNotFound, fiber.StatusNotFound, "KYC_NOT_FOUND"},
	{services.ErrKYCPending, fiber.StatusConflict, "KYC_ALREADY_PENDING"},
	{services.ErrKYCNotPending, fiber.StatusConflict, "KYC_NOT_PENDING"},
	{services.ErrRejectionReason, fiber.StatusBadRequest, "REJECTION_REASON_REQUIRED"},
	{providers.ErrUnsupportedProvider, fiber.StatusBadRequest, "UNSUPPORTED_PROVIDER"},
	{providers.ErrInvalidMode, fiber.StatusBadRequest, "INVALID_MODE"},
	{providers.ErrDemoUnsupported, fiber.StatusBadRequest, "DEMO_NOT_SUPPORTED"},
	{providers.ErrGameRequired, fiber.StatusBadRequest, "GAME_ID_REQUIRED"},
	{providers.ErrTokenRequired, fiber.StatusBadRequest, "TOKEN_REQUIRED"},
	{providers.ErrEndpointMissing, fiber.StatusServiceUnavailable, "PROVIDER_NOT_CONFIGURED"},
}

// ErrorMessage maps a service error onto an HTTP status and a public message.
func ErrorMessage(err error) (int, string) {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	logrus.WithError(err).Error("unhandled request error")
	return fiber.StatusInternalServerError, "INTERNAL_ERROR"
}

func Fail(c *fiber.Ctx, err error) error {
	status, message := ErrorMessage(err)
	return helpers.JSONErrorStatus(c, status, message)
}
