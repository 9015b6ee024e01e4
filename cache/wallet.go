package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gamewallet/models"

	"github.com/redis/go-redis/v9"
)

const (
	walletKeyPrefix = "wallet:balance:"
	walletGenPrefix = "wallet:gen:"

	generationTTL = 24 * time.Hour
)

func WalletKey(playerID string) string {
	return walletKeyPrefix + playerID
}

// NewRedisClient connects using a redis:// URL and pings once.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// WalletCache stores wallet snapshots as JSON with a TTL. Every invalidation
// bumps a per-wallet generation and a snapshot is only stored when the
// generation is still the one seen before the row was loaded.
type WalletCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWalletCache(client *redis.Client, ttl time.Duration) *WalletCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &WalletCache{client: client, ttl: ttl}
}

// Connect builds the wallet cache used by the API and the worker.
func Connect(ctx context.Context, redisURL string, ttl time.Duration) (*WalletCache, *redis.Client, error) {
	client, err := NewRedisClient(ctx, redisURL)
	if err != nil {
		return nil, nil, err
	}
	return NewWalletCache(client, ttl), client, nil
}

// GetWallet returns the cached wallet, or nil on a miss, and the current generation.
func (c *WalletCache) GetWallet(ctx context.Context, playerID string) (*models.Wallet, int64, error) {
	values, err := c.client.MGet(ctx, WalletKey(playerID), generationKey(playerID)).Result()
	if err != nil {
		return nil, 0, err
	}

	gen, err := parseGeneration(values[1])
	if err != nil {
		return nil, 0, err
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, gen, nil
	}
	var wallet models.Wallet
	if err := json.Unmarshal([]byte(raw), &wallet); err != nil {
		return nil, gen, err
	}
	return &wallet, gen, nil
}

// SetWallet stores the snapshot unless the wallet was invalidated after gen was read.
func (c *WalletCache) SetWallet(ctx context.Context, wallet *models.Wallet, gen int64) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return err
	}

	key, genKey := WalletKey(wallet.PlayerID), generationKey(wallet.PlayerID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *WalletCache) InvalidateWallet(ctx context.Context, playerID string) error {
	genKey := generationKey(playerID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, WalletKey(playerID))
		return nil
	})
	return err
}

func generationKey(playerID string) string {
	return walletGenPrefix + playerID
}

func parseGeneration(v any) (int64, error) {
	raw, ok := v.(string)
	if !ok {
		return 0, nil
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse wallet generation: %w", err)
	}
	return gen, nil
}
