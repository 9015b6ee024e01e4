package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gamewallet/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBonusFixture(t *testing.T) (*fixture, *BonusService) {
	t.Helper()
	f := newFixture(t)
	f.wallet(t, "player-1", 1000)

	bonuses := NewBonusService(f.db, f.wallets)
	_, err := bonuses.CreateTemplate(context.Background(), CreateTemplateRequest{
		Code:               "welcome",
		Name:               "Welcome bonus",
		Amount:             dec("100"),
		WageringMultiplier: dec("3"),
		DurationHours:      24,
	})
	require.NoError(t, err)
	return f, bonuses
}

func TestCreateTemplateValidation(t *testing.T) {
	_, bonuses := newBonusFixture(t)
	ctx := context.Background()

	_, err := bonuses.CreateTemplate(ctx, CreateTemplateRequest{Code: "WELCOME", Amount: dec("5"), WageringMultiplier: dec("1"), DurationHours: 1})
	assert.ErrorIs(t, err, ErrTemplateExists)

	_, err = bonuses.CreateTemplate(ctx, CreateTemplateRequest{Code: "ZERO", Amount: decimal.Zero, DurationHours: 1})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	templates, err := bonuses.ListTemplates(ctx, true)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "WELCOME", templates[0].Code)
}

func TestClaimCreditsBonusWallet(t *testing.T) {
	f, bonuses := newBonusFixture(t)
	ctx := context.Background()

	bonus, err := bonuses.Claim(ctx, "player-1", "welcome")
	require.NoError(t, err)
	assertAmount(t, "300", bonus.WageringRequired)
	assert.Equal(t, models.BonusStatusActive, bonus.Status)

	w, err := f.wallets.Find(ctx, "player-1")
	require.NoError(t, err)
	assertAmount(t, "100", w.BonusBalance)
	assertAmount(t, "1000", w.Balance)

	_, err = bonuses.Claim(ctx, "player-1", "welcome")
	assert.ErrorIs(t, err, ErrBonusAlreadyActive)

	_, err = bonuses.Claim(ctx, "player-1", "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestClaimRequiresVIPLevel(t *testing.T) {
	f, bonuses := newBonusFixture(t)
	ctx := context.Background()

	_, err := bonuses.CreateTemplate(ctx, CreateTemplateRequest{
		Code: "VIP", Amount: dec("50"), WageringMultiplier: dec("1"), DurationHours: 1, MinVIPLevel: 3,
	})
	require.NoError(t, err)

	_, err = bonuses.Claim(ctx, "player-1", "vip")
	assert.ErrorIs(t, err, ErrBonusNotEligible)

	require.NoError(t, f.wallets.SetVIPLevel(ctx, "player-1", 3))
	_, err = bonuses.Claim(ctx, "player-1", "vip")
	require.NoError(t, err)
}

func TestWageringReleasesBonus(t *testing.T) {
	f, bonuses := newBonusFixture(t)
	f.wallets.SetWagerRecorder(bonuses)
	ctx := context.Background()

	bonus, err := bonuses.Claim(ctx, "player-1", "WELCOME")
	require.NoError(t, err)

	_, err = f.wallets.Bet(ctx, gameTx("T1", "", "200"))
	require.NoError(t, err)

	list, err := bonuses.ListBonuses(ctx, "player-1", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assertAmount(t, "200", list[0].WageringProgress)
	assert.Equal(t, models.BonusStatusActive, list[0].Status)

	_, err = f.wallets.Bet(ctx, gameTx("T2", "", "100"))
	require.NoError(t, err)

	list, err = bonuses.ListBonuses(ctx, "player-1", models.BonusStatusCompleted)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, bonus.ID, list[0].ID)
	assert.NotNil(t, list[0].CompletedAt)

	w, err := f.wallets.Find(ctx, "player-1")
	require.NoError(t, err)
	assertAmount(t, "0", w.BonusBalance)
	assertAmount(t, "800", w.Balance)
}

func TestRolledBackBetsDoNotCountTowardWagering(t *testing.T) {
	f, bonuses := newBonusFixture(t)
	f.wallets.SetWagerRecorder(bonuses)
	ctx := context.Background()

	_, err := bonuses.Claim(ctx, "player-1", "WELCOME")
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("T%d", i)
		_, err := f.wallets.Bet(ctx, gameTx(id, "", "100"))
		require.NoError(t, err)
		_, err = f.wallets.Rollback(ctx, gameTx("", id, "0"))
		require.NoError(t, err)
	}

	list, err := bonuses.ListBonuses(ctx, "player-1", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.BonusStatusActive, list[0].Status)
	assertAmount(t, "0", list[0].WageringProgress)

	w, err := f.wallets.Find(ctx, "player-1")
	require.NoError(t, err)
	assertAmount(t, "100", w.BonusBalance)
	assertAmount(t, "1000", w.Balance)
}

func TestZeroMultiplierReleasesImmediately(t *testing.T) {
	f, bonuses := newBonusFixture(t)
	ctx := context.Background()

	_, err := bonuses.CreateTemplate(ctx, CreateTemplateRequest{
		Code: "FREE", Amount: dec("20"), WageringMultiplier: decimal.Zero, DurationHours: 1,
	})
	require.NoError(t, err)

	bonus, err := bonuses.Claim(ctx, "player-1", "free")
	require.NoError(t, err)
	assert.Equal(t, models.BonusStatusCompleted, bonus.Status)
	assertAmount(t, "1020", f.balance(t, "player-1"))
}

func TestExpireBonusesForfeitsRemainder(t *testing.T) {
	f, bonuses := newBonusFixture(t)
	ctx := context.Background()

	_, err := bonuses.Claim(ctx, "player-1", "WELCOME")
	require.NoError(t, err)

	expired, err := bonuses.ExpireBonuses(ctx)
	require.NoError(t, err)
	assert.Zero(t, expired)

	bonuses.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	expired, err = bonuses.ExpireBonuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	w, err := f.wallets.Find(ctx, "player-1")
	require.NoError(t, err)
	assertAmount(t, "0", w.BonusBalance)
	assertAmount(t, "1000", w.Balance)

	list, err := bonuses.ListBonuses(ctx, "player-1", models.BonusStatusExpired)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
