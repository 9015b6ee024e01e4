package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet is the per-player account. Rows are deactivated, never deleted.
type Wallet struct {
	gorm.Model

	PlayerID  string `gorm:"uniqueIndex;size:64;not null" json:"player_id"`
	AgentCode string `gorm:"index;size:32" json:"agent_code"`
	Country   string `gorm:"size:8" json:"country"`
	Currency  string `gorm:"size:8" json:"currency"`

	Balance       decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"balance"`
	BonusBalance  decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"bonus_balance"`
	CryptoBalance decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0" json:"crypto_balance"`
	DemoBalance   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"demo_balance"`

	VIPLevel int `gorm:"column:vip_level;default:0" json:"vip_level"`

	// Zero means no limit.
	DailyDepositLimit decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"daily_deposit_limit"`
	DailyLossLimit    decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"daily_loss_limit"`

	SelfExcludedUntil *time.Time `json:"self_excluded_until"`
	KYCVerified       bool       `gorm:"column:kyc_verified;default:false" json:"kyc_verified"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
}

func (w *Wallet) SelfExcluded(now time.Time) bool {
	return w.SelfExcludedUntil != nil && now.Before(*w.SelfExcludedUntil)
}

// BalanceColumn maps a sub-wallet to the column holding its balance.
func BalanceColumn(subWallet string) string {
	if subWallet == SubWalletBonus {
		return "bonus_balance"
	}
	return "balance"
}

func (w *Wallet) SubBalance(subWallet string) decimal.Decimal {
	if subWallet == SubWalletBonus {
		return w.BonusBalance
	}
	return w.Balance
}

func (w *Wallet) SetSubBalance(subWallet string, value decimal.Decimal) {
	if subWallet == SubWalletBonus {
		w.BonusBalance = value
		return
	}
	w.Balance = value
}
