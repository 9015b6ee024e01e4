package models

import (
	"time"

	"gorm.io/gorm"
)

type AdminAccount struct {
	gorm.Model

	Username     string     `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:32;default:admin" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

type SecurityLog struct {
	gorm.Model

	AdminID  uint   `gorm:"index" json:"admin_id"`
	Username string `gorm:"size:64" json:"username"`
	Action   string `gorm:"size:64;index" json:"action"`
	Target   string `gorm:"size:128" json:"target"`
	Detail   string `gorm:"size:512" json:"detail"`
	IP       string `gorm:"size:64" json:"ip"`
}
