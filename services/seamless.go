package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gamewallet/helpers"
	"gamewallet/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ResultCode int

const (
	CodeSuccess               ResultCode = 0
	CodeInvalidParameter      ResultCode = 1001
	CodeInvalidSign           ResultCode = 1002
	CodeInvalidAgent          ResultCode = 1003
	CodeInvalidToken          ResultCode = 1004
	CodeUserNotFound          ResultCode = 2001
	CodeUserBlocked           ResultCode = 2002
	CodeInsufficientFunds     ResultCode = 3001
	CodeInvalidAmount         ResultCode = 3002
	CodeLimitExceeded         ResultCode = 3003
	CodeDuplicateTransaction  ResultCode = 4001
	CodeTransactionNotFound   ResultCode = 4002
	CodeTransactionRolledBack ResultCode = 4003
	CodeSystemError           ResultCode = 9999
)

var resultNames = map[ResultCode]string{
	CodeSuccess:               "SUCCESS",
	CodeInvalidParameter:      "INVALID_PARAMETER",
	CodeInvalidSign:           "INVALID_SIGN",
	CodeInvalidAgent:          "INVALID_AGENT",
	CodeInvalidToken:          "INVALID_TOKEN",
	CodeUserNotFound:          "USER_NOT_FOUND",
	CodeUserBlocked:           "USER_BLOCKED",
	CodeInsufficientFunds:     "INSUFFICIENT_FUNDS",
	CodeInvalidAmount:         "INVALID_AMOUNT",
	CodeLimitExceeded:         "LIMIT_EXCEEDED",
	CodeDuplicateTransaction:  "DUPLICATE_TRANSACTION",
	CodeTransactionNotFound:   "TRANSACTION_NOT_FOUND",
	CodeTransactionRolledBack: "TRANSACTION_ROLLED_BACK",
	CodeSystemError:           "SYSTEM_ERROR",
}

func (c ResultCode) String() string {
	if name, ok := resultNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// CodeFor maps a ledger error onto the callback result code.
func CodeFor(err error) ResultCode {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrWalletNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrWalletInactive), errors.Is(err, ErrSelfExcluded):
		return CodeUserBlocked
	case errors.Is(err, ErrLimitExceeded):
		return CodeLimitExceeded
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrTransactionRolledBack):
		return CodeTransactionRolledBack
	case errors.Is(err, ErrNotReversible):
		return CodeInvalidParameter
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
		return CodeInvalidToken
	default:
		return CodeSystemError
	}
}

type CallbackRequest struct {
	AgentID          string          `json:"agentID"`
	Sign             string          `json:"sign"`
	UserID           string          `json:"userID"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionID    string          `json:"transactionID"`
	RefTransactionID string          `json:"refTransactionID,omitempty"`
	RoundID          string          `json:"roundID,omitempty"`
	GameID           string          `json:"gameID,omitempty"`
	Token            string          `json:"token,omitempty"`
	Currency         string          `json:"currency,omitempty"`
}

type CallbackResponse struct {
	Code                  ResultCode `json:"code"`
	Message               string     `json:"message"`
	UserID                string     `json:"userID,omitempty"`
	PlatformTransactionID string     `json:"platformTransactionID,omitempty"`
	Balance               float64    `json:"balance"`
	Currency              string     `json:"currency,omitempty"`
}

func newResponse(code ResultCode, balance decimal.Decimal, currency string) CallbackResponse {
	return CallbackResponse{
		Code:     code,
		Message:  code.String(),
		Balance:  balance.Round(2).InexactFloat64(),
		Currency: currency,
	}
}

// SeamlessService answers the seamless wallet callbacks of one provider.
// Every outcome is a result code; nothing is returned as a transport error.
type SeamlessService struct {
	Provider string
	SkipSign bool

	wallets  *WalletService
	agents   *AgentService
	sessions *SessionService
	audit    *CallbackAuditor
}

func NewSeamlessService(provider string, wallets *WalletService, agents *AgentService, sessions *SessionService, audit *CallbackAuditor) *SeamlessService {
	return &SeamlessService{
		Provider: strings.ToUpper(provider),
		wallets:  wallets,
		agents:   agents,
		sessions: sessions,
		audit:    audit,
	}
}

func (s *SeamlessService) handle(ctx context.Context, action string, req CallbackRequest, fn func() CallbackResponse) (resp CallbackResponse) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"provider": s.Provider,
				"action":   action,
				"panic":    r,
			}).Error("seamless callback panicked")
			resp = newResponse(CodeSystemError, decimal.Zero, "")
		}
		s.audit.Record(ctx, CallbackEntry{
			Provider:      s.Provider,
			Action:        action,
			PlayerID:      req.UserID,
			TransactionID: req.TransactionID,
			Code:          int(resp.Code),
			Request:       req,
			Response:      resp,
			Duration:      time.Since(start),
		})
	}()
	return fn()
}

// authorize checks agent, signature and wallet ownership.
func (s *SeamlessService) authorize(ctx context.Context, req CallbackRequest, ref string) (*models.Wallet, ResultCode) {
	if req.AgentID == "" || req.UserID == "" {
		return nil, CodeInvalidParameter
	}

	agent, err := s.agents.FindActive(ctx, req.AgentID)
	if err != nil {
		if errors.Is(err, ErrAgentNotFound) {
			return nil, CodeInvalidAgent
		}
		logrus.WithError(err).Error("agent lookup failed")
		return nil, CodeSystemError
	}

	if !s.SkipSign {
		expected := helpers.SeamlessSign(agent.SecretKey, req.AgentID, req.UserID, ref)
		if !helpers.SignEqual(expected, req.Sign) {
			return nil, CodeInvalidSign
		}
	}

	wallet, err := s.wallets.CachedWallet(ctx, req.UserID)
	if err != nil {
		code := CodeFor(err)
		if code == CodeSystemError {
			logrus.WithError(err).Error("wallet lookup failed")
		}
		return nil, code
	}
	if wallet.AgentCode != agent.AgentCode {
		return nil, CodeUserNotFound
	}
	return wallet, CodeSuccess
}

func (s *SeamlessService) ledgerResponse(action string, req CallbackRequest, result *LedgerResult, err error) CallbackResponse {
	code := CodeFor(err)
	if code == CodeSystemError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"provider":       s.Provider,
			"action":         action,
			"user_id":        req.UserID,
			"transaction_id": req.TransactionID,
		}).Error("ledger operation failed")
	}

	resp := newResponse(code, result.Balance, result.Currency)
	resp.UserID = req.UserID
	if code == CodeSuccess || code == CodeDuplicateTransaction {
		resp.PlatformTransactionID = result.PlatformTxID()
	}
	return resp
}

func (s *SeamlessService) gameTransaction(req CallbackRequest) GameTransaction {
	return GameTransaction{
		Provider:         s.Provider,
		PlayerID:         req.UserID,
		TransactionID:    req.TransactionID,
		RefTransactionID: req.RefTransactionID,
		GameID:           req.GameID,
		RoundID:          req.RoundID,
		Amount:           req.Amount,
	}
}

func (s *SeamlessService) Balance(ctx context.Context, req CallbackRequest) CallbackResponse {
	return s.handle(ctx, "balance", req, func() CallbackResponse {
		wallet, code := s.authorize(ctx, req, "")
		if code != CodeSuccess {
			return newResponse(code, decimal.Zero, "")
		}
		resp := newResponse(CodeSuccess, wallet.Balance, wallet.Currency)
		resp.UserID = wallet.PlayerID
		return resp
	})
}

// Authenticate resolves a launch token to its player.
func (s *SeamlessService) Authenticate(ctx context.Context, req CallbackRequest) CallbackResponse {
	return s.handle(ctx, "authenticate", req, func() CallbackResponse {
		if req.Token == "" {
			return newResponse(CodeInvalidParameter, decimal.Zero, "")
		}
		session, err := s.sessions.Resolve(ctx, req.Token)
		if err != nil {
			return newResponse(CodeFor(err), decimal.Zero, "")
		}
		if req.UserID == "" {
			req.UserID = session.PlayerID
		}
		if req.UserID != session.PlayerID {
			return newResponse(CodeInvalidToken, decimal.Zero, "")
		}

		wallet, code := s.authorize(ctx, req, req.Token)
		if code != CodeSuccess {
			return newResponse(code, decimal.Zero, "")
		}
		resp := newResponse(CodeSuccess, wallet.Balance, wallet.Currency)
		resp.UserID = wallet.PlayerID
		return resp
	})
}

// Withdraw debits a bet.
func (s *SeamlessService) Withdraw(ctx context.Context, req CallbackRequest) CallbackResponse {
	return s.handle(ctx, "withdraw", req, func() CallbackResponse {
		if req.TransactionID == "" {
			return newResponse(CodeInvalidParameter, decimal.Zero, "")
		}
		if _, code := s.authorize(ctx, req, req.TransactionID); code != CodeSuccess {
			return newResponse(code, decimal.Zero, "")
		}
		result, err := s.wallets.Bet(ctx, s.gameTransaction(req))
		return s.ledgerResponse("withdraw", req, result, err)
	})
}

// Deposit credits a win.
func (s *SeamlessService) Deposit(ctx context.Context, req CallbackRequest) CallbackResponse {
	return s.handle(ctx, "deposit", req, func() CallbackResponse {
		if req.TransactionID == "" {
			return newResponse(CodeInvalidParameter, decimal.Zero, "")
		}
		if _, code := s.authorize(ctx, req, req.TransactionID); code != CodeSuccess {
			return newResponse(code, decimal.Zero, "")
		}
		result, err := s.wallets.Win(ctx, s.gameTransaction(req))
		return s.ledgerResponse("deposit", req, result, err)
	})
}

// Rollback reverses the transaction named by RefTransactionID, or by
// TransactionID when the provider sends no reference.
func (s *SeamlessService) Rollback(ctx context.Context, req CallbackRequest) CallbackResponse {
	return s.handle(ctx, "rollback", req, func() CallbackResponse {
		if req.RefTransactionID == "" {
			req.RefTransactionID = req.TransactionID
		}
		if req.RefTransactionID == "" {
			return newResponse(CodeInvalidParameter, decimal.Zero, "")
		}
		if _, code := s.authorize(ctx, req, req.TransactionID); code != CodeSuccess {
			return newResponse(code, decimal.Zero, "")
		}
		result, err := s.wallets.Rollback(ctx, s.gameTransaction(req))
		return s.ledgerResponse("rollback", req, result, err)
	})
}
