// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hotspot-voucher-platform/internal/config"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
	"hotspot-voucher-platform/internal/infra/adapters/identity"
	"hotspot-voucher-platform/internal/infra/adapters/mikrotik"
	"hotspot-voucher-platform/internal/infra/adapters/notify"
	"hotspot-voucher-platform/internal/infra/adapters/payment"
	pg "hotspot-voucher-platform/internal/infra/db/postgres"
	"hotspot-voucher-platform/internal/infra/logging"
	"hotspot-voucher-platform/internal/infra/metrics"
	red "hotspot-voucher-platform/internal/infra/redis"
	"hotspot-voucher-platform/internal/infra/web"
	"hotspot-voucher-platform/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, insecure cookies)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	locker := red.NewLocker(redisClient)
	limiter := red.NewRateLimiter(redisClient)
	settingCache := red.NewSettingCache(redisClient, cfg.Redis.TTL)

	// ---- Repositories ----
	tariffRepo := pg.NewPostgresTariffRepo(pool)
	purchaseRepo := pg.NewPostgresPurchaseRepo(pool)
	ambassadorRepo := pg.NewPostgresAmbassadorRepo(pool)
	settingRepo := pg.NewPostgresSettingRepo(pool, settingCache)
	commissionRepo := pg.NewPostgresCommissionRepo(pool)

	// ---- Adapters ----
	routerClient := mikrotik.NewClient(cfg.Mikrotik)
	fwVerifier := payment.NewFlutterwaveVerifier(cfg.Payment.Flutterwave.SecretKey)
	directory := identity.NewHTTPDirectory(cfg.Identity.URL, cfg.Identity.ServiceKey)
	notifier := notify.NewNoopNotifier(logger)

	var alerter adapter.OpsAlerter = notify.NoopAlerter{}
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegramAlerter(cfg.Telegram)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram alerter disabled")
		} else {
			alerter = tg
		}
	}

	// ---- Use cases ----
	sessionUC := usecase.NewSessionUseCase(tariffRepo, purchaseRepo, logger)
	referralUC := usecase.NewReferralUseCase(ambassadorRepo, settingRepo, purchaseRepo, logger)
	completionUC := usecase.NewCompletionUseCase(
		purchaseRepo, tariffRepo, commissionRepo,
		routerClient, locker, notifier, alerter,
		cfg.Payment.Flutterwave.Currency, logger,
	)
	tariffUC := usecase.NewTariffUseCase(tariffRepo)
	settingUC := usecase.NewSettingUseCase(settingRepo)
	ambassadorUC := usecase.NewAmbassadorUseCase(ambassadorRepo, directory, logger)

	// ---- HTTP server ----
	srv := web.NewServer(cfg,
		sessionUC, referralUC, completionUC, tariffUC, settingUC, ambassadorUC,
		fwVerifier, limiter, logger,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
