package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ModeReal = "real"
	ModeDemo = "demo"
)

// GameSession binds a launch token to a player and game until ExpiresAt.
type GameSession struct {
	gorm.Model
	SID        string    `gorm:"column:sid;size:36;uniqueIndex;not null" json:"sid"`
	PlayerID   string    `gorm:"size:64;index" json:"player_id"`
	ProviderID string    `gorm:"size:32" json:"provider_id"`
	GameID     string    `gorm:"size:64" json:"game_id"`
	Mode       string    `gorm:"size:8" json:"mode"`
	Currency   string    `gorm:"size:8" json:"currency"`
	ExpiresAt  time.Time `gorm:"index" json:"expires_at"`
}

func (s *GameSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.SID == "" {
		s.SID = strings.ToLower(uuid.New().String())
	}
	return nil
}

func (s *GameSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
