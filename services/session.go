package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamewallet/models"
	"gamewallet/providers"

	"gorm.io/gorm"
)

type StartGameRequest struct {
	PlayerID   string
	ProviderID string
	GameID     string
	Mode       string
	Currency   string
	Language   string
	Platform   string
}

type StartGameResult struct {
	LaunchURL string
	Session   *models.GameSession
}

// SessionService issues launch tokens and resolves them on provider callbacks.
type SessionService struct {
	db      *gorm.DB
	wallets *WalletService
	ttl     time.Duration
	now     func() time.Time
}

func NewSessionService(db *gorm.DB, wallets *WalletService, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{db: db, wallets: wallets, ttl: ttl, now: time.Now}
}

// StartGame builds a launch URL. Real mode opens a session whose SID is the token.
func (s *SessionService) StartGame(ctx context.Context, req StartGameRequest) (*StartGameResult, error) {
	launch := providers.Normalize(providers.LaunchRequest{
		ProviderID: req.ProviderID,
		GameID:     req.GameID,
		PlayerID:   req.PlayerID,
		Mode:       req.Mode,
		Currency:   req.Currency,
		Language:   req.Language,
		Platform:   req.Platform,
	})

	if launch.Mode != providers.ModeReal {
		if launch.Currency == "" {
			if wallet, err := s.wallets.Find(ctx, req.PlayerID); err == nil {
				launch.Currency = wallet.Currency
			}
		}
		url, err := providers.BuildLaunchURL(launch)
		if err != nil {
			return nil, err
		}
		return &StartGameResult{LaunchURL: url}, nil
	}

	wallet, err := s.wallets.Find(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}
	if err := s.wallets.checkPlayable(wallet); err != nil {
		return nil, err
	}
	if launch.Currency == "" {
		launch.Currency = wallet.Currency
	}

	result := &StartGameResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := models.GameSession{
			PlayerID:   wallet.PlayerID,
			ProviderID: launch.ProviderID,
			GameID:     launch.GameID,
			Mode:       launch.Mode,
			Currency:   launch.Currency,
			ExpiresAt:  s.now().Add(s.ttl),
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		launch.Token = session.SID
		url, err := providers.BuildLaunchURL(launch)
		if err != nil {
			return err
		}

		result.LaunchURL = url
		result.Session = &session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.db.WithContext(ctx).Where("sid = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session.Expired(s.now()) {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// PurgeExpired hard-deletes sessions past their expiry.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Unscoped().Where("expires_at < ?", s.now()).Delete(&models.GameSession{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
