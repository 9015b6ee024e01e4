package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CallbackLog keeps the raw exchange of every provider callback.
type CallbackLog struct {
	gorm.Model

	Provider      string         `gorm:"size:32;index"`
	Action        string         `gorm:"size:32;index"`
	PlayerID      string         `gorm:"size:64;index"`
	TransactionID string         `gorm:"size:128;index"`
	Code          int            `gorm:"index"`
	Request       datatypes.JSON `json:"request"`
	Response      datatypes.JSON `json:"response"`
	DurationMs    int64
}
