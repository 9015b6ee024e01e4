package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TxTypeBet      = "bet"
	TxTypeWin      = "win"
	TxTypeDeposit  = "deposit"
	TxTypeWithdraw = "withdraw"
	TxTypeRollback = "rollback"
	TxTypeCredit   = "credit"
	TxTypeDebit    = "debit"

	TxStatusCompleted = "completed"
	TxStatusRollback  = "rollback"

	SubWalletMain  = "main"
	SubWalletBonus = "bonus"

	ProviderCashier = "CASHIER"
	ProviderAdmin   = "ADMIN"
	ProviderBonus   = "BONUS"
)

// Transaction is an immutable ledger row. Only Status may change, and only to rollback.
type Transaction struct {
	gorm.Model

	PlatformTxID string `gorm:"column:platform_tx_id;size:36;uniqueIndex;not null" json:"platform_transaction_id"`
	PlayerID     string `gorm:"size:64;index;not null" json:"player_id"`
	WalletID     uint   `gorm:"index" json:"wallet_id"`

	Provider     string `gorm:"size:32;index:idx_provider_tx,unique" json:"provider"`
	ProviderTxID string `gorm:"column:provider_tx_id;size:128;index:idx_provider_tx,unique" json:"provider_transaction_id"`
	RefTxID      string `gorm:"column:ref_tx_id;size:128;index" json:"ref_transaction_id,omitempty"`

	Type      string `gorm:"size:16;index" json:"type"`
	Status    string `gorm:"size:16;index" json:"status"`
	SubWallet string `gorm:"size:8;default:main" json:"sub_wallet"`

	Amount        decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"balance_after"`
	Currency      string          `gorm:"size:8" json:"currency"`

	GameID  string `gorm:"size:64;index" json:"game_id,omitempty"`
	RoundID string `gorm:"size:64;index" json:"round_id,omitempty"`
	Note    string `gorm:"size:255" json:"note,omitempty"`
}
