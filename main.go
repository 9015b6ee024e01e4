package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gamewallet/cache"
	"gamewallet/config"
	"gamewallet/database"
	"gamewallet/helpers"
	"gamewallet/jobs"
	"gamewallet/providers"
	_ "gamewallet/providers/casino"
	_ "gamewallet/providers/slots"
	"gamewallet/routes"
	"gamewallet/services"
	"gamewallet/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	helpers.InitLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}

	for name, p := range cfg.Providers {
		providers.SetEndpoint(name, providers.Endpoint{
			BaseURL:    p.BaseURL,
			OperatorID: p.OperatorID,
			LobbyURL:   p.LobbyURL,
		})
	}

	var walletCache services.WalletCache = services.NoopWalletCache{}
	var enqueuer *worker.Enqueuer
	if cfg.RedisURL != "" {
		redisCache, client, err := cache.Connect(context.Background(), cfg.RedisURL, cfg.BalanceCacheTTL)
		if err != nil {
			logrus.Fatalf("redis: %v", err)
		}
		defer client.Close()
		walletCache = redisCache

		redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("redis uri: %v", err)
		}
		asynqClient := asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		enqueuer = worker.NewEnqueuer(asynqClient)
		logrus.Info("redis enabled: balance cache and async bonus wagering")
	}

	wallets := services.NewWalletService(db, walletCache)
	wallets.KYCRequiredForWithdraw = cfg.KYCRequiredForWithdraw
	wallets.StrictWinReference = cfg.StrictWinReference

	agents := services.NewAgentService(db)
	sessions := services.NewSessionService(db, wallets, cfg.SessionTTL)
	bonuses := services.NewBonusService(db, wallets)
	kyc := services.NewKYCService(db, wallets)
	admins := services.NewAdminService(db, cfg.AdminJWTSecret, cfg.AdminTokenTTL)
	audit := services.NewCallbackAuditor(db)

	if enqueuer != nil {
		wallets.SetWagerRecorder(enqueuer)
	} else {
		wallets.SetWagerRecorder(bonuses)
	}

	seamless := services.NewSeamlessService("gitslotpark", wallets, agents, sessions, audit)
	seamless.SkipSign = cfg.SkipSignVerification
	if cfg.SkipSignVerification {
		logrus.Warn("callback signature verification is disabled")
	}

	app := fiber.New()
	routes.Setup(app, routes.Deps{
		Agents:             agents,
		Wallets:            wallets,
		Sessions:           sessions,
		Bonuses:            bonuses,
		KYC:                kyc,
		Admins:             admins,
		Seamless:           seamless,
		Audit:              audit,
		MasterAgentCode:    cfg.MasterAgentCode,
		MasterAgentSecret:  cfg.MasterAgentSecret,
		PragmaticSecretKey: cfg.PragmaticSecretKey,
		SkipSign:           cfg.SkipSignVerification,
		LoginRateLimit:     cfg.AdminLoginRateLimit,
	})

	scheduler := &jobs.Scheduler{
		Bonuses:           bonuses,
		Sessions:          sessions,
		Audit:             audit,
		CallbackRetention: cfg.CallbackLogRetention,
	}
	if err := scheduler.Start(); err != nil {
		logrus.Fatalf("scheduler: %v", err)
	}

	addr := cfg.Addr()
	logrus.Infof("server running at %s", addr)

	go func() {
		if err := app.Listen(addr); err != nil {
			logrus.Panicf("failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logrus.Info("gracefully shutting down...")
	if err := app.Shutdown(); err != nil {
		logrus.Errorf("server forced to shutdown: %v", err)
	}
	scheduler.Stop()
	logrus.Info("server exited cleanly")
}
