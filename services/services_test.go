package services

import (
	"context"
	"testing"

	"gamewallet/database/dbtest"
	"gamewallet/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	wallets *WalletService
	agents  *AgentService
	agent   *models.Agent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	agents := NewAgentService(db)
	agent, err := agents.Register(context.Background(), "operator", "IDR", 0)
	require.NoError(t, err)

	return &fixture{
		db:      db,
		wallets: NewWalletService(db, nil),
		agents:  agents,
		agent:   agent,
	}
}

func (f *fixture) wallet(t *testing.T, playerID string, balance int64) *models.Wallet {
	t.Helper()

	w := &models.Wallet{
		PlayerID:  playerID,
		AgentCode: f.agent.AgentCode,
		Country:   "ID",
		Currency:  "IDR",
		Balance:   decimal.NewFromInt(balance),
	}
	require.NoError(t, f.wallets.CreateWallet(context.Background(), w))
	return w
}

func (f *fixture) balance(t *testing.T, playerID string) decimal.Decimal {
	t.Helper()
	w, err := f.wallets.Find(context.Background(), playerID)
	require.NoError(t, err)
	return w.Balance
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
