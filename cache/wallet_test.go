package cache

import (
	"context"
	"testing"
	"time"

	"gamewallet/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*WalletCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewWalletCache(client, time.Minute), mr
}

func TestWalletCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	miss, gen, err := c.GetWallet(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, miss)
	assert.Zero(t, gen)

	w := &models.Wallet{PlayerID: "p1", Currency: "IDR", Balance: decimal.RequireFromString("125.50"), IsActive: true}
	require.NoError(t, c.SetWallet(ctx, w, gen))
	assert.True(t, mr.Exists("wallet:balance:p1"))
	assert.Equal(t, time.Minute, mr.TTL("wallet:balance:p1"))

	got, _, err := c.GetWallet(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, w.Balance.Equal(got.Balance))
	assert.Equal(t, "IDR", got.Currency)

	require.NoError(t, c.InvalidateWallet(ctx, "p1"))
	assert.False(t, mr.Exists("wallet:balance:p1"))
}

func TestWalletCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetWallet(ctx, &models.Wallet{PlayerID: "p2"}, 0))
	mr.FastForward(2 * time.Minute)

	got, _, err := c.GetWallet(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStaleSnapshotDroppedAfterInvalidation(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, gen, err := c.GetWallet(ctx, "p3")
	require.NoError(t, err)

	// a write commits and invalidates while the reader still holds the old row
	require.NoError(t, c.InvalidateWallet(ctx, "p3"))
	stale := &models.Wallet{PlayerID: "p3", Balance: decimal.NewFromInt(500)}
	require.NoError(t, c.SetWallet(ctx, stale, gen))
	assert.False(t, mr.Exists("wallet:balance:p3"))

	_, gen, err = c.GetWallet(ctx, "p3")
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen)

	fresh := &models.Wallet{PlayerID: "p3", Balance: decimal.NewFromInt(400)}
	require.NoError(t, c.SetWallet(ctx, fresh, gen))
	got, _, err := c.GetWallet(ctx, "p3")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, fresh.Balance.Equal(got.Balance))
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url")
	assert.Error(t, err)
}
