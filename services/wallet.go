package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamewallet/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletCache is a read-through copy of wallet rows. GetWallet returns nil on a
// miss together with the cache generation, and SetWallet must drop the write
// when the wallet was invalidated after that generation was read.
type WalletCache interface {
	GetWallet(ctx context.Context, playerID string) (*models.Wallet, int64, error)
	SetWallet(ctx context.Context, wallet *models.Wallet, gen int64) error
	InvalidateWallet(ctx context.Context, playerID string) error
}

type NoopWalletCache struct{}

func (NoopWalletCache) GetWallet(context.Context, string) (*models.Wallet, int64, error) {
	return nil, 0, nil
}
func (NoopWalletCache) SetWallet(context.Context, *models.Wallet, int64) error { return nil }
func (NoopWalletCache) InvalidateWallet(context.Context, string) error { return nil }

// MoneyScale is the number of decimal places stored for every amount.
const MoneyScale = 2

// ValidAmount reports whether amount is non-negative and fits the stored scale.
func ValidAmount(amount decimal.Decimal) bool {
	return !amount.IsNegative() && amount.Equal(amount.Round(MoneyScale))
}

// WagerRecorder receives every settled stake for bonus wagering.
type WagerRecorder interface {
	RecordWager(ctx context.Context, playerID string, stake decimal.Decimal) error
}

// GameTransaction is one provider-initiated balance change.
type GameTransaction struct {
	Provider         string
	PlayerID         string
	TransactionID    string
	RefTransactionID string
	GameID           string
	RoundID          string
	Amount           decimal.Decimal
}

type CashierRequest struct {
	PlayerID  string
	AgentCode string
	Country   string
	Currency  string
	Amount    decimal.Decimal
	Reference string
	Note      string
}

// LedgerResult carries the wallet state after an operation. On ErrDuplicateTransaction
// Transaction is the row recorded the first time.
type LedgerResult struct {
	Balance      decimal.Decimal
	BonusBalance decimal.Decimal
	Currency     string
	Transaction  *models.Transaction
}

func (r *LedgerResult) PlatformTxID() string {
	if r == nil || r.Transaction == nil {
		return ""
	}
	return r.Transaction.PlatformTxID
}

func (r *LedgerResult) fill(w *models.Wallet) {
	r.Balance = w.Balance
	r.BonusBalance = w.BonusBalance
	r.Currency = w.Currency
}

type TransactionFilter struct {
	PlayerID  string
	AgentCode string
	Type      string
	Provider  string
	From      *time.Time
	To        *time.Time
}

type WalletService struct {
	db     *gorm.DB
	cache  WalletCache
	wagers WagerRecorder
	now    func() time.Time

	KYCRequiredForWithdraw bool
	StrictWinReference     bool
}

func NewWalletService(db *gorm.DB, cache WalletCache) *WalletService {
	if cache == nil {
		cache = NoopWalletCache{}
	}
	return &WalletService{db: db, cache: cache, now: time.Now}
}

// SetWagerRecorder wires the bonus wagering hand-off. Nil disables it.
func (s *WalletService) SetWagerRecorder(r WagerRecorder) {
	s.wagers = r
}

func (s *WalletService) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Wallet{}).
		Where("player_id = ?", wallet.PlayerID).Count(&count).Error; err != nil {
		return fmt.Errorf("check wallet: %w", err)
	}
	if count > 0 {
		return ErrWalletExists
	}

	wallet.IsActive = true
	if err := s.db.WithContext(ctx).Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrWalletExists
		}
		return fmt.Errorf("create wallet: %w", err)
	}
	return nil
}

func (s *WalletService) Find(ctx context.Context, playerID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.db.WithContext(ctx).Where("player_id = ?", playerID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("find wallet: %w", err)
	}
	return &wallet, nil
}

// CachedWallet serves balance reads through the cache.
func (s *WalletService) CachedWallet(ctx context.Context, playerID string) (*models.Wallet, error) {
	cached, gen, cacheErr := s.cache.GetWallet(ctx, playerID)
	if cacheErr != nil {
		logrus.WithError(cacheErr).WithField("player_id", playerID).Warn("wallet cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	wallet, err := s.Find(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if cacheErr != nil {
		return wallet, nil
	}
	if err := s.cache.SetWallet(ctx, wallet, gen); err != nil {
		logrus.WithError(err).WithField("player_id", playerID).Warn("wallet cache write failed")
	}
	return wallet, nil
}

func (s *WalletService) invalidate(ctx context.Context, playerID string) {
	if err := s.cache.InvalidateWallet(ctx, playerID); err != nil {
		logrus.WithError(err).WithField("player_id", playerID).Warn("wallet cache invalidation failed")
	}
}

// withLockedWallet runs fn in a transaction holding the wallet row lock.
// fn must use tx for every query.
func (s *WalletService) withLockedWallet(ctx context.Context, playerID string, fn func(tx *gorm.DB, wallet *models.Wallet) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("player_id = ?", playerID).First(&wallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return fmt.Errorf("lock wallet: %w", err)
		}
		return fn(tx, &wallet)
	})
	if err == nil {
		s.invalidate(ctx, playerID)
	}
	return err
}

func findProviderTx(tx *gorm.DB, provider, providerTxID string) (*models.Transaction, error) {
	var existing models.Transaction
	err := tx.Where("provider = ? AND provider_tx_id = ?", provider, providerTxID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup transaction: %w", err)
	}
	return &existing, nil
}

type ledgerEntry struct {
	Provider     string
	ProviderTxID string
	RefTxID      string
	Type         string
	SubWallet    string
	GameID       string
	RoundID      string
	Note         string
	Amount       decimal.Decimal
	Delta        decimal.Decimal
}

// post applies a signed delta to one sub-wallet and writes the ledger row.
func (s *WalletService) post(tx *gorm.DB, wallet *models.Wallet, e ledgerEntry) (*models.Transaction, error) {
	if e.SubWallet == "" {
		e.SubWallet = models.SubWalletMain
	}

	before := wallet.SubBalance(e.SubWallet)
	after := before.Add(e.Delta)
	if after.IsNegative() {
		return nil, ErrInsufficientFunds
	}

	if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
		Update(models.BalanceColumn(e.SubWallet), after).Error; err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}
	wallet.SetSubBalance(e.SubWallet, after)

	record := &models.Transaction{
		PlatformTxID:  uuid.NewString(),
		PlayerID:      wallet.PlayerID,
		WalletID:      wallet.ID,
		Provider:      e.Provider,
		ProviderTxID:  e.ProviderTxID,
		RefTxID:       e.RefTxID,
		Type:          e.Type,
		Status:        models.TxStatusCompleted,
		SubWallet:     e.SubWallet,
		Amount:        e.Amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Currency:      wallet.Currency,
		GameID:        e.GameID,
		RoundID:       e.RoundID,
		Note:          e.Note,
	}
	if err := tx.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return record, nil
}

// sumSince totals completed main-wallet amounts of the given type over a window.
// A "loss" type sums bets minus wins.
func (s *WalletService) sumSince(tx *gorm.DB, playerID, kind string, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal

	q := tx.Model(&models.Transaction{}).
		Where("player_id = ? AND status = ? AND sub_wallet = ? AND created_at >= ?",
			playerID, models.TxStatusCompleted, models.SubWalletMain, since)

	if kind == "loss" {
		q = q.Select("COALESCE(SUM(CASE WHEN type = ? THEN amount WHEN type = ? THEN -amount ELSE 0 END), 0)",
			models.TxTypeBet, models.TxTypeWin)
	} else {
		q = q.Select("COALESCE(SUM(amount), 0)").Where("type = ?", kind)
	}

	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum %s: %w", kind, err)
	}
	return total, nil
}

func (s *WalletService) checkLossLimit(tx *gorm.DB, wallet *models.Wallet, stake decimal.Decimal) error {
	if !wallet.DailyLossLimit.IsPositive() {
		return nil
	}
	loss, err := s.sumSince(tx, wallet.PlayerID, "loss", s.now().Add(-24*time.Hour))
	if err != nil {
		return err
	}
	if loss.Add(stake).GreaterThan(wallet.DailyLossLimit) {
		return ErrLimitExceeded
	}
	return nil
}

func (s *WalletService) checkDepositLimit(tx *gorm.DB, wallet *models.Wallet, amount decimal.Decimal) error {
	if !wallet.DailyDepositLimit.IsPositive() {
		return nil
	}
	deposited, err := s.sumSince(tx, wallet.PlayerID, models.TxTypeDeposit, s.now().Add(-24*time.Hour))
	if err != nil {
		return err
	}
	if deposited.Add(amount).GreaterThan(wallet.DailyDepositLimit) {
		return ErrLimitExceeded
	}
	return nil
}

func (s *WalletService) checkPlayable(wallet *models.Wallet) error {
	if !wallet.IsActive {
		return ErrWalletInactive
	}
	if wallet.SelfExcluded(s.now()) {
		return ErrSelfExcluded
	}
	return nil
}

// Bet debits a stake. A replayed transaction ID returns ErrDuplicateTransaction
// with the balance untouched.
func (s *WalletService) Bet(ctx context.Context, req GameTransaction) (*LedgerResult, error) {
	result := &LedgerResult{}
	if !ValidAmount(req.Amount) {
		return result, ErrInvalidAmount
	}

	err := s.withLockedWallet(ctx, req.PlayerID, func(tx *gorm.DB, wallet *models.Wallet) error {
		result.fill(wallet)

		existing, err := findProviderTx(tx, req.Provider, req.TransactionID)
		if err != nil {
			return err
		}
		if existing != nil {
			result.Transaction = existing
			return ErrDuplicateTransaction
		}

		if err := s.checkPlayable(wallet); err != nil {
			return err
		}
		if wallet.Balance.LessThan(req.Amount) {
			return ErrInsufficientFunds
		}
		if err := s.checkLossLimit(tx, wallet, req.Amount); err != nil {
			return err
		}

		record, err := s.post(tx, wallet, ledgerEntry{
			Provider:     req.Provider,
			ProviderTxID: req.TransactionID,
			Type:         models.TxTypeBet,
			GameID:       req.GameID,
			RoundID:      req.RoundID,
			Amount:       req.Amount,
			Delta:        req.Amount.Neg(),
		})
		if err != nil {
			return err
		}
		result.Transaction = record
		result.fill(wallet)
		return nil
	})
	if err != nil {
		return result, err
	}

	s.recordWager(ctx, req.PlayerID, req.Amount)
	return result, nil
}

// Win credits a payout. Settlement is accepted on inactive or self-excluded
// wallets since the stake was already taken.
func (s *WalletService) Win(ctx context.Context, req GameTransaction) (*LedgerResult, error) {
	result := &LedgerResult{}
	if !ValidAmount(req.Amount) {
		return result, ErrInvalidAmount
	}

	err := s.withLockedWallet(ctx, req.PlayerID, func(tx *gorm.DB, wallet *models.Wallet) error {
		result.fill(wallet)

		existing, err := findProviderTx(tx, req.Provider, req.TransactionID)
		if err != nil {
			return err
		}
		if existing != nil {
			result.Transaction = existing
			return ErrDuplicateTransaction
		}

		if req.RefTransactionID != "" {
			bet, err := findProviderTx(tx, req.Provider, req.RefTransactionID)
			if err != nil {
				return err
			}
			if bet == nil || bet.PlayerID != wallet.PlayerID {
				if s.StrictWinReference {
					return ErrTransactionNotFound
				}
				logrus.WithFields(logrus.Fields{
					"provider":           req.Provider,
					"player_id":          req.PlayerID,
					"transaction_id":     req.TransactionID,
					"ref_transaction_id": req.RefTransactionID,
				}).Warn("win references an unknown bet")
			}
		}

		record, err := s.post(tx, wallet, ledgerEntry{
			Provider:     req.Provider,
			ProviderTxID: req.TransactionID,
			RefTxID:      req.RefTransactionID,
			Type:         models.TxTypeWin,
			GameID:       req.GameID,
			RoundID:      req.RoundID,
			Amount:       req.Amount,
			Delta:        req.Amount,
		})
		if err != nil {
			return err
		}
		result.Transaction = record
		result.fill(wallet)
		return nil
	})
	return result, err
}

// RollbackKey is the provider_tx_id a rollback is stored under. It is always
// namespaced so a provider reusing the original transaction ID cannot collide
// with the row being reversed.
func RollbackKey(transactionID, refTransactionID string) string {
	if transactionID == "" {
		transactionID = refTransactionID
	}
	return "rollback:" + transactionID
}

// Rollback reverses a bet or win identified by RefTransactionID, falling back
// to TransactionID when no reference is given. The original row is flagged
// rollback, a reversing row is appended and a reversed bet is taken back out
// of bonus wagering progress.
func (s *WalletService) Rollback(ctx context.Context, req GameTransaction) (*LedgerResult, error) {
	result := &LedgerResult{}
	if req.RefTransactionID == "" {
		req.RefTransactionID = req.TransactionID
	}
	if req.RefTransactionID == "" {
		return result, ErrTransactionNotFound
	}

	rollbackID := RollbackKey(req.TransactionID, req.RefTransactionID)

	err := s.withLockedWallet(ctx, req.PlayerID, func(tx *gorm.DB, wallet *models.Wallet) error {
		result.fill(wallet)

		existing, err := findProviderTx(tx, req.Provider, rollbackID)
		if err != nil {
			return err
		}
		if existing != nil {
			result.Transaction = existing
			return ErrDuplicateTransaction
		}

		original, err := findProviderTx(tx, req.Provider, req.RefTransactionID)
		if err != nil {
			return err
		}
		if original == nil || original.PlayerID != wallet.PlayerID {
			return ErrTransactionNotFound
		}
		if original.Status == models.TxStatusRollback {
			return ErrTransactionRolledBack
		}

		var delta decimal.Decimal
		switch original.Type {
		case models.TxTypeBet:
			delta = original.Amount
		case models.TxTypeWin:
			delta = original.Amount.Neg()
		default:
			return ErrNotReversible
		}

		record, err := s.post(tx, wallet, ledgerEntry{
			Provider:     req.Provider,
			ProviderTxID: rollbackID,
			RefTxID:      original.ProviderTxID,
			Type:         models.TxTypeRollback,
			SubWallet:    original.SubWallet,
			GameID:       original.GameID,
			RoundID:      original.RoundID,
			Amount:       original.Amount,
			Delta:        delta,
			Note:         "rollback of " + original.Type,
		})
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Transaction{}).Where("id = ?", original.ID).
			Update("status", models.TxStatusRollback).Error; err != nil {
			return fmt.Errorf("flag original transaction: %w", err)
		}
		if original.Type == models.TxTypeBet && original.SubWallet == models.SubWalletMain {
			if err := s.reverseWager(tx, original); err != nil {
				return err
			}
		}

		result.Transaction = record
		result.fill(wallet)
		return nil
	})
	return result, err
}

func (s *WalletService) recordWager(ctx context.Context, playerID string, stake decimal.Decimal) {
	if s.wagers == nil || !stake.IsPositive() {
		return
	}
	if err := s.wagers.RecordWager(ctx, playerID, stake); err != nil {
		logrus.WithError(err).WithField("player_id", playerID).Warn("failed to record bonus wager")
	}
}

// reverseWager takes a rolled-back stake out of every active bonus that was
// already running when the bet was placed. Progress never drops below zero.
func (s *WalletService) reverseWager(tx *gorm.DB, bet *models.Transaction) error {
	var bonuses []models.Bonus
	if err := tx.Where("player_id = ? AND status = ? AND created_at <= ?",
		bet.PlayerID, models.BonusStatusActive, bet.CreatedAt).
		Find(&bonuses).Error; err != nil {
		return fmt.Errorf("load bonuses: %w", err)
	}

	for i := range bonuses {
		b := &bonuses[i]
		progress := decimal.Max(b.WageringProgress.Sub(bet.Amount), decimal.Zero)
		if progress.Equal(b.WageringProgress) {
			continue
		}
		if err := tx.Model(b).Update("wagering_progress", progress).Error; err != nil {
			return fmt.Errorf("reverse wagering: %w", err)
		}
	}
	return nil
}

// ensureWallet creates the wallet on first deposit.
func (s *WalletService) ensureWallet(ctx context.Context, req CashierRequest) error {
	wallet := models.Wallet{
		PlayerID:  req.PlayerID,
		AgentCode: req.AgentCode,
		Country:   req.Country,
		Currency:  req.Currency,
		IsActive:  true,
	}
	err := s.db.WithContext(ctx).Where(models.Wallet{PlayerID: req.PlayerID}).
		Attrs(wallet).FirstOrCreate(&models.Wallet{}).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("ensure wallet: %w", err)
	}
	return nil
}

func cashierReference(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return uuid.NewString()
	}
	return ref
}

// CashierDeposit credits real money, creating the wallet if needed.
func (s *WalletService) CashierDeposit(ctx context.Context, req CashierRequest) (*LedgerResult, error) {
	result := &LedgerResult{}
	if !req.Amount.IsPositive() || !ValidAmount(req.Amount) {
		return result, ErrInvalidAmount
	}
	if err := s.ensureWallet(ctx, req); err != nil {
		return result, err
	}

	reference := cashierReference(req.Reference)
	note := req.Note
	if note == "" {
		note = "cashier deposit"
	}

	err := s.withLockedWallet(ctx, req.PlayerID, func(tx *gorm.DB, wallet *models.Wallet) error {
		result.fill(wallet)

		existing, err := findProviderTx(tx, models.ProviderCashier, reference)
		if err != nil {
			return err
		}
		if existing != nil {
			result.Transaction = existing
			return ErrDuplicateTransaction
		}
		if err := s.checkPlayable(wallet); err != nil {
			return err
		}
		if err := s.checkDepositLimit(tx, wallet, req.Amount); err != nil {
			return err
		}

		record, err := s.post(tx, wallet, ledgerEntry{
			Provider:     models.ProviderCashier,
			ProviderTxID: reference,
			Type:         models.TxTypeDeposit,
			Amount:       req.Amount,
			Delta:        req.Amount,
			Note:         note,
		})
		if err != nil {
			return err
		}
		result.Transaction = record
		result.fill(wallet)
		return nil
	})
	return result, err
}

// CashierWithdraw pays real money out. Self-excluded players may still withdraw.
func (s *WalletService) CashierWithdraw(ctx context.Context, req CashierRequest) (*LedgerResult, error) {
	result := &LedgerResult{}
	if !req.Amount.IsPositive() || !ValidAmount(req.Amount) {
		return result, ErrInvalidAmount
	}

	reference := cashierReference(req.Reference)
	note := req.Note
	if note == "" {
		note = "cashier withdraw"
	}

	err := s.withLockedWallet(ctx, req.PlayerID, func(tx *gorm.DB, wallet *models.Wallet) error {
		result.fill(wallet)

		existing, err := findProviderTx(tx, models.ProviderCashier, reference)
		if err != nil {
			return err
		}
		if existing != nil {
			result.Transaction = existing
			return ErrDuplicateTransaction
		}
		if !wallet.IsActive {
			return ErrWalletInactive
		}
		if s.KYCRequiredForWithdraw && !wallet.KYCVerified {
			return ErrKYCRequired
		}

		record, err := s.post(tx, wallet, ledgerEntry{
			Provider:     models.ProviderCashier,
			ProviderTxID: reference,
			Type:         models.TxTypeWithdraw,
			Amount:       req.Amount,
			Delta:        req.Amount.Neg(),
			Note:         note,
		})
		if err != nil {
			return err
		}
		result.Transaction = record
		result.fill(wallet)
		return nil
	})
	return result, err
}

// Adjust books a manual credit or debit on the main balance.
func (s *WalletService) Adjust(ctx context.Context, playerID string, amount decimal.Decimal, credit bool, note string) (*LedgerResult, error) {
	result := &LedgerResult{}
	if !amount.IsPositive() || !ValidAmount(amount) {
		return result, ErrInvalidAmount
	}

	txType, delta := models.TxTypeCredit, amount
	if !credit {
		txType, delta = models.TxTypeDebit, amount.Neg()
	}

	err := s.withLockedWallet(ctx, playerID, func(tx *gorm.DB, wallet *models.Wallet) error {
		record, err := s.post(tx, wallet, ledgerEntry{
			Provider:     models.ProviderAdmin,
			ProviderTxID: uuid.NewString(),
			Type:         txType,
			Amount:       amount,
			Delta:        delta,
			Note:         note,
		})
		if err != nil {
			result.fill(wallet)
			return err
		}
		result.Transaction = record
		result.fill(wallet)
		return nil
	})
	return result, err
}

func (s *WalletService) updateWallet(ctx context.Context, playerID string, values map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.Wallet{}).Where("player_id = ?", playerID).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update wallet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	s.invalidate(ctx, playerID)
	return nil
}

// SetStatus toggles the soft inactive flag.
func (s *WalletService) SetStatus(ctx context.Context, playerID string, active bool) error {
	return s.updateWallet(ctx, playerID, map[string]any{"is_active": active})
}

func (s *WalletService) SetVIPLevel(ctx context.Context, playerID string, level int) error {
	if level < 0 {
		return ErrInvalidAmount
	}
	return s.updateWallet(ctx, playerID, map[string]any{"vip_level": level})
}

// SetLimits stores the daily deposit and loss limits. Zero clears a limit.
func (s *WalletService) SetLimits(ctx context.Context, playerID string, deposit, loss decimal.Decimal) error {
	if !ValidAmount(deposit) || !ValidAmount(loss) {
		return ErrInvalidAmount
	}
	return s.updateWallet(ctx, playerID, map[string]any{
		"daily_deposit_limit": deposit,
		"daily_loss_limit":    loss,
	})
}

// SelfExclude blocks play until the given time. An exclusion is never shortened.
func (s *WalletService) SelfExclude(ctx context.Context, playerID string, until time.Time) (*models.Wallet, error) {
	wallet, err := s.Find(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if wallet.SelfExcludedUntil != nil && wallet.SelfExcludedUntil.After(until) {
		return wallet, nil
	}
	if err := s.updateWallet(ctx, playerID, map[string]any{"self_excluded_until": until}); err != nil {
		return nil, err
	}
	wallet.SelfExcludedUntil = &until
	return wallet, nil
}

func (s *WalletService) ListTransactions(ctx context.Context, filter TransactionFilter, page, limit int) ([]models.Transaction, int64, error) {
	scoped := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Transaction{})
		if filter.PlayerID != "" {
			q = q.Where("player_id = ?", filter.PlayerID)
		}
		if filter.AgentCode != "" {
			q = q.Where("player_id IN (?)",
				s.db.Model(&models.Wallet{}).Select("player_id").Where("agent_code = ?", filter.AgentCode))
		}
		if filter.Type != "" {
			q = q.Where("type = ?", filter.Type)
		}
		if filter.Provider != "" {
			q = q.Where("provider = ?", strings.ToUpper(filter.Provider))
		}
		if filter.From != nil {
			q = q.Where("created_at >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("created_at < ?", *filter.To)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	var rows []models.Transaction
	if err := scoped().Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return rows, total, nil
}

// TotalBalanceByAgent sums the main balance of an agent's players.
func (s *WalletService) TotalBalanceByAgent(ctx context.Context, agentCode string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := s.db.WithContext(ctx).Model(&models.Wallet{}).
		Select("COALESCE(SUM(balance), 0)").
		Where("agent_code = ?", agentCode).Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum agent balance: %w", err)
	}
	return total, nil
}
