package main

import (
	"context"

	"gamewallet/cache"
	"gamewallet/config"
	"gamewallet/database"
	"gamewallet/helpers"
	"gamewallet/services"
	"gamewallet/worker"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// The worker consumes bonus wagering tasks enqueued by the API when REDIS_URL is set.
func main() {
	cfg := config.Load()
	helpers.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.RedisURL == "" {
		logrus.Fatal("REDIS_URL is required for the worker")
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("redis uri: %v", err)
	}

	// Bonus grants and releases move balances, so the worker invalidates the
	// same balance cache the API reads from.
	walletCache, client, err := cache.Connect(context.Background(), cfg.RedisURL, cfg.BalanceCacheTTL)
	if err != nil {
		logrus.Fatalf("redis: %v", err)
	}
	defer client.Close()

	wallets := services.NewWalletService(db, walletCache)
	bonuses := services.NewBonusService(db, wallets)

	logrus.Infof("starting worker with concurrency %d", cfg.WorkerConcurrency)
	if err := worker.StartWorker(redisOpt, bonuses, cfg.WorkerConcurrency); err != nil {
		logrus.Fatal(err)
	}
}
