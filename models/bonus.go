package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BonusStatusActive    = "active"
	BonusStatusCompleted = "completed"
	BonusStatusExpired   = "expired"
)

type BonusTemplate struct {
	gorm.Model

	Code               string          `gorm:"uniqueIndex;size:32;not null" json:"code"`
	Name               string          `gorm:"size:128" json:"name"`
	Amount             decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	WageringMultiplier decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"wagering_multiplier"`
	DurationHours      int             `json:"duration_hours"`
	MinVIPLevel        int             `gorm:"column:min_vip_level;default:0" json:"min_vip_level"`
	IsActive           bool            `gorm:"default:true" json:"is_active"`
}

// Bonus tracks one granted bonus through active -> completed | expired.
type Bonus struct {
	gorm.Model

	PlayerID     string `gorm:"size:64;index;not null" json:"player_id"`
	TemplateID   uint   `gorm:"index" json:"template_id"`
	TemplateCode string `gorm:"size:32" json:"template_code"`

	Amount           decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	WageringRequired decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"wagering_required"`
	WageringProgress decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"wagering_progress"`

	Status      string     `gorm:"size:16;index" json:"status"`
	ExpiresAt   time.Time  `gorm:"index" json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
