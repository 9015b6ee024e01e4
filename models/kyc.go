package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	KYCStatusPending  = "pending"
	KYCStatusApproved = "approved"
	KYCStatusRejected = "rejected"
)

type KYCRequest struct {
	gorm.Model

	PlayerID        string     `gorm:"size:64;index;not null" json:"player_id"`
	DocumentType    string     `gorm:"size:32" json:"document_type"`
	DocumentRef     string     `gorm:"size:255" json:"document_ref"`
	Status          string     `gorm:"size:16;index" json:"status"`
	RejectionReason string     `gorm:"size:255" json:"rejection_reason,omitempty"`
	ReviewedBy      string     `gorm:"size:64" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
}
