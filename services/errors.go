package services

import "errors"

var (
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrWalletExists          = errors.New("wallet already exists")
	ErrWalletInactive        = errors.New("wallet is inactive")
	ErrSelfExcluded          = errors.New("player is self-excluded")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrLimitExceeded         = errors.New("responsible gaming limit exceeded")
	ErrKYCRequired           = errors.New("kyc verification required")
	ErrDuplicateTransaction  = errors.New("duplicate transaction")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionRolledBack = errors.New("transaction already rolled back")
	ErrNotReversible         = errors.New("transaction type cannot be rolled back")

	ErrAgentNotFound      = errors.New("agent not found")
	ErrAgentExists        = errors.New("agent already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrSessionNotFound = errors.New("game session not found")
	ErrSessionExpired  = errors.New("game session expired")

	ErrTemplateNotFound   = errors.New("bonus template not found")
	ErrTemplateExists     = errors.New("bonus template already exists")
	ErrBonusNotEligible   = errors.New("player is not eligible for this bonus")
	ErrBonusAlreadyActive = errors.New("bonus already active for this template")

	ErrKYCNotFound      = errors.New("kyc request not found")
	ErrKYCPending       = errors.New("kyc request already pending")
	ErrKYCNotPending    = errors.New("kyc request is not pending")
	ErrRejectionReason  = errors.New("rejection reason is required")
	ErrAdminNotFound    = errors.New("admin account not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrJWTNotConfigured = errors.New("admin jwt secret not configured")
)
