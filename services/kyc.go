package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamewallet/models"

	"gorm.io/gorm"
)

type KYCService struct {
	db      *gorm.DB
	wallets *WalletService
	now     func() time.Time
}

func NewKYCService(db *gorm.DB, wallets *WalletService) *KYCService {
	return &KYCService{db: db, wallets: wallets, now: time.Now}
}

// Submit files a pending request. Only one request may be pending per player.
func (s *KYCService) Submit(ctx context.Context, playerID, documentType, documentRef string) (*models.KYCRequest, error) {
	if strings.TrimSpace(documentType) == "" || strings.TrimSpace(documentRef) == "" {
		return nil, ErrInvalidAmount
	}
	if _, err := s.wallets.Find(ctx, playerID); err != nil {
		return nil, err
	}

	var pending int64
	if err := s.db.WithContext(ctx).Model(&models.KYCRequest{}).
		Where("player_id = ? AND status = ?", playerID, models.KYCStatusPending).
		Count(&pending).Error; err != nil {
		return nil, fmt.Errorf("check pending kyc: %w", err)
	}
	if pending > 0 {
		return nil, ErrKYCPending
	}

	req := models.KYCRequest{
		PlayerID:     playerID,
		DocumentType: strings.ToLower(documentType),
		DocumentRef:  documentRef,
		Status:       models.KYCStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, fmt.Errorf("create kyc request: %w", err)
	}
	return &req, nil
}

func (s *KYCService) Get(ctx context.Context, id uint) (*models.KYCRequest, error) {
	var req models.KYCRequest
	if err := s.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKYCNotFound
		}
		return nil, fmt.Errorf("find kyc request: %w", err)
	}
	return &req, nil
}

func (s *KYCService) Approve(ctx context.Context, id uint, reviewer string) (*models.KYCRequest, error) {
	return s.review(ctx, id, reviewer, models.KYCStatusApproved, "")
}

func (s *KYCService) Reject(ctx context.Context, id uint, reviewer, reason string) (*models.KYCRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrRejectionReason
	}
	return s.review(ctx, id, reviewer, models.KYCStatusRejected, reason)
}

// review moves a pending request to its final status; approval also verifies the wallet.
func (s *KYCService) review(ctx context.Context, id uint, reviewer, status, reason string) (*models.KYCRequest, error) {
	var req models.KYCRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrKYCNotFound
			}
			return fmt.Errorf("find kyc request: %w", err)
		}

		now := s.now()
		res := tx.Model(&models.KYCRequest{}).
			Where("id = ? AND status = ?", id, models.KYCStatusPending).
			Updates(map[string]any{
				"status":           status,
				"rejection_reason": reason,
				"reviewed_by":      reviewer,
				"reviewed_at":      now,
			})
		if res.Error != nil {
			return fmt.Errorf("update kyc request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrKYCNotPending
		}

		req.Status = status
		req.RejectionReason = reason
		req.ReviewedBy = reviewer
		req.ReviewedAt = &now

		if status == models.KYCStatusApproved {
			if err := tx.Model(&models.Wallet{}).Where("player_id = ?", req.PlayerID).
				Update("kyc_verified", true).Error; err != nil {
				return fmt.Errorf("verify wallet: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.wallets.invalidate(ctx, req.PlayerID)
	return &req, nil
}

func (s *KYCService) List(ctx context.Context, status string, page, limit int) ([]models.KYCRequest, int64, error) {
	scoped := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.KYCRequest{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count kyc requests: %w", err)
	}

	var rows []models.KYCRequest
	if err := scoped().Order("id ASC").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list kyc requests: %w", err)
	}
	return rows, total, nil
}
