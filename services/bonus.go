package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamewallet/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CreateTemplateRequest struct {
	Code               string
	Name               string
	Amount             decimal.Decimal
	WageringMultiplier decimal.Decimal
	DurationHours      int
	MinVIPLevel        int
}

// BonusService grants bonuses into the bonus sub-wallet and releases them to the
// main balance once the wagering requirement is met.
type BonusService struct {
	db      *gorm.DB
	wallets *WalletService
	now     func() time.Time
}

func NewBonusService(db *gorm.DB, wallets *WalletService) *BonusService {
	return &BonusService{db: db, wallets: wallets, now: time.Now}
}

func (s *BonusService) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*models.BonusTemplate, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || !req.Amount.IsPositive() || !ValidAmount(req.Amount) || req.WageringMultiplier.IsNegative() || req.DurationHours <= 0 {
		return nil, ErrInvalidAmount
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.BonusTemplate{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check template: %w", err)
	}
	if count > 0 {
		return nil, ErrTemplateExists
	}

	tpl := models.BonusTemplate{
		Code:               code,
		Name:               req.Name,
		Amount:             req.Amount,
		WageringMultiplier: req.WageringMultiplier,
		DurationHours:      req.DurationHours,
		MinVIPLevel:        req.MinVIPLevel,
		IsActive:           true,
	}
	if err := s.db.WithContext(ctx).Create(&tpl).Error; err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return &tpl, nil
}

func (s *BonusService) ListTemplates(ctx context.Context, activeOnly bool) ([]models.BonusTemplate, error) {
	var templates []models.BonusTemplate
	q := s.db.WithContext(ctx).Order("id")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (s *BonusService) SetTemplateActive(ctx context.Context, code string, active bool) error {
	res := s.db.WithContext(ctx).Model(&models.BonusTemplate{}).
		Where("code = ?", strings.ToUpper(code)).Update("is_active", active)
	if res.Error != nil {
		return fmt.Errorf("update template: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *BonusService) ListBonuses(ctx context.Context, playerID, status string) ([]models.Bonus, error) {
	var bonuses []models.Bonus
	q := s.db.WithContext(ctx).Where("player_id = ?", playerID).Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&bonuses).Error; err != nil {
		return nil, fmt.Errorf("list bonuses: %w", err)
	}
	return bonuses, nil
}

// Claim grants a template's bonus to a player.
func (s *BonusService) Claim(ctx context.Context, playerID, templateCode string) (*models.Bonus, error) {
	var tpl models.BonusTemplate
	if err := s.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", strings.ToUpper(templateCode), true).
		First(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("find template: %w", err)
	}

	var bonus models.Bonus
	err := s.wallets.withLockedWallet(ctx, playerID, func(tx *gorm.DB, wallet *models.Wallet) error {
		if err := s.wallets.checkPlayable(wallet); err != nil {
			return err
		}
		if wallet.VIPLevel < tpl.MinVIPLevel {
			return ErrBonusNotEligible
		}

		var active int64
		if err := tx.Model(&models.Bonus{}).
			Where("player_id = ? AND template_id = ? AND status = ?", playerID, tpl.ID, models.BonusStatusActive).
			Count(&active).Error; err != nil {
			return fmt.Errorf("check active bonus: %w", err)
		}
		if active > 0 {
			return ErrBonusAlreadyActive
		}

		now := s.now()
		bonus = models.Bonus{
			PlayerID:         playerID,
			TemplateID:       tpl.ID,
			TemplateCode:     tpl.Code,
			Amount:           tpl.Amount,
			WageringRequired: tpl.Amount.Mul(tpl.WageringMultiplier).Round(MoneyScale),
			WageringProgress: decimal.Zero,
			Status:           models.BonusStatusActive,
			ExpiresAt:        now.Add(time.Duration(tpl.DurationHours) * time.Hour),
		}
		if err := tx.Create(&bonus).Error; err != nil {
			return fmt.Errorf("create bonus: %w", err)
		}

		_, err := s.wallets.post(tx, wallet, ledgerEntry{
			Provider:     models.ProviderBonus,
			ProviderTxID: fmt.Sprintf("bonus:%d:grant", bonus.ID),
			Type:         models.TxTypeCredit,
			SubWallet:    models.SubWalletBonus,
			Amount:       tpl.Amount,
			Delta:        tpl.Amount,
			Note:         "bonus granted: " + tpl.Code,
		})
		if err != nil {
			return err
		}

		// A zero multiplier means nothing to wager.
		if !bonus.WageringRequired.IsPositive() {
			return s.release(tx, wallet, &bonus, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bonus, nil
}

// RecordWager adds a stake to the player's active bonuses and releases those
// whose requirement is met.
func (s *BonusService) RecordWager(ctx context.Context, playerID string, stake decimal.Decimal) error {
	if !stake.IsPositive() {
		return nil
	}

	now := s.now()

	var pending int64
	if err := s.db.WithContext(ctx).Model(&models.Bonus{}).
		Where("player_id = ? AND status = ? AND expires_at > ?", playerID, models.BonusStatusActive, now).
		Count(&pending).Error; err != nil {
		return fmt.Errorf("count active bonuses: %w", err)
	}
	if pending == 0 {
		return nil
	}

	return s.wallets.withLockedWallet(ctx, playerID, func(tx *gorm.DB, wallet *models.Wallet) error {
		var bonuses []models.Bonus
		if err := tx.Where("player_id = ? AND status = ? AND expires_at > ?", playerID, models.BonusStatusActive, now).
			Order("id").Find(&bonuses).Error; err != nil {
			return fmt.Errorf("load active bonuses: %w", err)
		}

		for i := range bonuses {
			bonus := &bonuses[i]
			bonus.WageringProgress = bonus.WageringProgress.Add(stake)

			if bonus.WageringProgress.GreaterThanOrEqual(bonus.WageringRequired) {
				if err := s.release(tx, wallet, bonus, now); err != nil {
					return err
				}
				continue
			}

			if err := tx.Model(&models.Bonus{}).Where("id = ?", bonus.ID).
				Update("wagering_progress", bonus.WageringProgress).Error; err != nil {
				return fmt.Errorf("update wagering progress: %w", err)
			}
		}
		return nil
	})
}

// release completes a bonus and moves its remaining amount to the main balance.
func (s *BonusService) release(tx *gorm.DB, wallet *models.Wallet, bonus *models.Bonus, now time.Time) error {
	amount := decimal.Min(bonus.Amount, wallet.BonusBalance)

	if amount.IsPositive() {
		if _, err := s.wallets.post(tx, wallet, ledgerEntry{
			Provider:     models.ProviderBonus,
			ProviderTxID: fmt.Sprintf("bonus:%d:release-out", bonus.ID),
			Type:         models.TxTypeDebit,
			SubWallet:    models.SubWalletBonus,
			Amount:       amount,
			Delta:        amount.Neg(),
			Note:         "bonus wagering completed: " + bonus.TemplateCode,
		}); err != nil {
			return err
		}
		if _, err := s.wallets.post(tx, wallet, ledgerEntry{
			Provider:     models.ProviderBonus,
			ProviderTxID: fmt.Sprintf("bonus:%d:release-in", bonus.ID),
			Type:         models.TxTypeCredit,
			SubWallet:    models.SubWalletMain,
			Amount:       amount,
			Delta:        amount,
			Note:         "bonus released: " + bonus.TemplateCode,
		}); err != nil {
			return err
		}
	}

	bonus.Status = models.BonusStatusCompleted
	bonus.CompletedAt = &now
	if err := tx.Model(&models.Bonus{}).Where("id = ?", bonus.ID).Updates(map[string]any{
		"status":            bonus.Status,
		"wagering_progress": bonus.WageringProgress,
		"completed_at":      now,
	}).Error; err != nil {
		return fmt.Errorf("complete bonus: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"player_id": bonus.PlayerID,
		"bonus_id":  bonus.ID,
		"released":  amount.String(),
	}).Info("bonus released")
	return nil
}

// ExpireBonuses forfeits active bonuses past their expiry and returns how many expired.
func (s *BonusService) ExpireBonuses(ctx context.Context) (int, error) {
	now := s.now()

	var due []models.Bonus
	if err := s.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", models.BonusStatusActive, now).
		Order("id").Find(&due).Error; err != nil {
		return 0, fmt.Errorf("load expired bonuses: %w", err)
	}

	expired := 0
	for _, candidate := range due {
		err := s.wallets.withLockedWallet(ctx, candidate.PlayerID, func(tx *gorm.DB, wallet *models.Wallet) error {
			var bonus models.Bonus
			if err := tx.First(&bonus, candidate.ID).Error; err != nil {
				return fmt.Errorf("reload bonus: %w", err)
			}
			if bonus.Status != models.BonusStatusActive {
				return nil
			}

			amount := decimal.Min(bonus.Amount, wallet.BonusBalance)
			if amount.IsPositive() {
				if _, err := s.wallets.post(tx, wallet, ledgerEntry{
					Provider:     models.ProviderBonus,
					ProviderTxID: fmt.Sprintf("bonus:%d:expire", bonus.ID),
					Type:         models.TxTypeDebit,
					SubWallet:    models.SubWalletBonus,
					Amount:       amount,
					Delta:        amount.Neg(),
					Note:         "bonus expired: " + bonus.TemplateCode,
				}); err != nil {
					return err
				}
			}

			if err := tx.Model(&models.Bonus{}).Where("id = ?", bonus.ID).
				Update("status", models.BonusStatusExpired).Error; err != nil {
				return fmt.Errorf("expire bonus: %w", err)
			}
			expired++
			return nil
		})
		if err != nil {
			logrus.WithError(err).WithField("bonus_id", candidate.ID).Error("failed to expire bonus")
		}
	}
	return expired, nil
}
