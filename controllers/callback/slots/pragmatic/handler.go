package pragmatic

import (
	"context"
	"errors"
	"strings"
	"time"

	"gamewallet/helpers"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const Provider = "PRAGMATIC"

// Pragmatic Play error codes.
const (
	errSuccess        = 0
	errInsufficient   = 1
	errPlayerNotFound = 2
	errBadToken       = 4
	errBadHash        = 5
	errPlayerFrozen   = 6
	errBadParameters  = 7
	errInternal       = 100
)

var descriptions = map[int]string{
	errSuccess:        "Success",
	errInsufficient:   "Insufficient balance",
	errPlayerNotFound: "Player not found",
	errBadToken:       "Player authentication failed due to invalid, not found or expired token",
	errBadHash:        "Invalid hash code",
	errPlayerFrozen:   "Player is frozen",
	errBadParameters:  "Bad parameters in the request",
	errInternal:       "Internal server error",
}

type Handler struct {
	Wallets    *services.WalletService
	Sessions   *services.SessionService
	Audit      *services.CallbackAuditor
	SecretKey  string
	ProviderID string
	SkipHash   bool
}

func NewHandler(wallets *services.WalletService, sessions *services.SessionService, audit *services.CallbackAuditor, secretKey string) *Handler {
	return &Handler{
		Wallets:    wallets,
		Sessions:   sessions,
		Audit:      audit,
		SecretKey:  secretKey,
		ProviderID: "pragmaticplay",
	}
}

type response struct {
	TransactionID string  `json:"transactionId,omitempty"`
	UserID        string  `json:"userId,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	Cash          float64 `json:"cash"`
	Bonus         float64 `json:"bonus"`
	UsedPromo     float64 `json:"usedPromo"`
	Error         int     `json:"error"`
	Description   string  `json:"description"`
}

func failure(code int) response {
	return response{Error: code, Description: descriptions[code]}
}

func success(cash, bonus decimal.Decimal, currency string) response {
	return response{
		Currency:    strings.ToUpper(currency),
		Cash:        cash.Round(2).InexactFloat64(),
		Bonus:       bonus.Round(2).InexactFloat64(),
		Error:       errSuccess,
		Description: descriptions[errSuccess],
	}
}

// errorCode maps a ledger error onto the Pragmatic code set.
func errorCode(err error) int {
	switch {
	case err == nil:
		return errSuccess
	case errors.Is(err, services.ErrInsufficientFunds):
		return errInsufficient
	case errors.Is(err, services.ErrWalletNotFound):
		return errPlayerNotFound
	case errors.Is(err, services.ErrWalletInactive), errors.Is(err, services.ErrSelfExcluded),
		errors.Is(err, services.ErrLimitExceeded):
		return errPlayerFrozen
	case errors.Is(err, services.ErrSessionNotFound), errors.Is(err, services.ErrSessionExpired):
		return errBadToken
	case errors.Is(err, services.ErrInvalidAmount):
		return errBadParameters
	default:
		return errInternal
	}
}

// formParams returns every urlencoded field of the request body.
func formParams(c *fiber.Ctx) map[string]string {
	params := map[string]string{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		params[string(key)] = string(value)
	})
	return params
}

// verify checks required fields, providerId and the hash. It returns 0 when the request may proceed.
func (h *Handler) verify(params map[string]string, required ...string) int {
	for _, field := range append([]string{"providerId", "hash"}, required...) {
		if params[field] == "" {
			return errBadParameters
		}
	}
	if params["providerId"] != h.ProviderID {
		return errBadParameters
	}
	if h.SkipHash {
		return errSuccess
	}
	if h.SecretKey == "" {
		return errBadHash
	}
	if !helpers.SignEqual(helpers.PragmaticHash(params, h.SecretKey), params["hash"]) {
		return errBadHash
	}
	return errSuccess
}

type action func(ctx context.Context, params map[string]string) response

// serve parses, verifies and audits one callback. Pragmatic expects HTTP 200 on every outcome.
func (h *Handler) serve(c *fiber.Ctx, name string, required []string, run action) error {
	start := time.Now()
	params := formParams(c)

	var resp response
	if code := h.verify(params, required...); code != errSuccess {
		resp = failure(code)
	} else {
		resp = run(c.UserContext(), params)
	}

	h.Audit.Record(c.UserContext(), services.CallbackEntry{
		Provider:      Provider,
		Action:        name,
		PlayerID:      params["userId"],
		TransactionID: params["reference"],
		Code:          resp.Error,
		Request:       params,
		Response:      resp,
		Duration:      time.Since(start),
	})
	return c.JSON(resp)
}

func (h *Handler) walletResponse(ctx context.Context, playerID string) response {
	wallet, err := h.Wallets.CachedWallet(ctx, playerID)
	if err != nil {
		return failure(errorCode(err))
	}
	resp := success(wallet.Balance, wallet.BonusBalance, wallet.Currency)
	resp.UserID = wallet.PlayerID
	return resp
}

func ledgerResponse(result *services.LedgerResult, err error) response {
	if err != nil && !errors.Is(err, services.ErrDuplicateTransaction) {
		return failure(errorCode(err))
	}
	resp := success(result.Balance, result.BonusBalance, result.Currency)
	resp.TransactionID = result.PlatformTxID()
	return resp
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || !services.ValidAmount(amount) {
		return decimal.Zero, false
	}
	return amount, true
}

func gameTransaction(params map[string]string, amount decimal.Decimal) services.GameTransaction {
	return services.GameTransaction{
		Provider:      Provider,
		PlayerID:      params["userId"],
		TransactionID: params["reference"],
		GameID:        params["gameId"],
		RoundID:       params["roundId"],
		Amount:        amount,
	}
}
