package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fundraiser/internal/adapter/repo"
	"fundraiser/internal/auth"
	"fundraiser/internal/http/handlers"
	"fundraiser/internal/http/httpapi"
	"fundraiser/internal/infra"
	"fundraiser/internal/infra/geoip"
	"fundraiser/internal/payments"
	"fundraiser/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	var gateway payments.Gateway
	if cfg.RazorpayKeyID != "" {
		gateway, err = payments.NewRazorpayGateway(payments.RazorpayOptions{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
			BaseURL:   cfg.RazorpayBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build payment gateway")
		}
	} else {
		logger.Warn().Msg("RAZORPAY_KEY_ID unset; orders are minted locally")
	}

	var receipts storage.Storage
	switch cfg.StorageBackend {
	case "s3":
		receipts, err = storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region)
	default:
		receipts, err = storage.NewFileStore(cfg.StorageDir, cfg.StorageBaseURL)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build receipt storage")
	}

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}

	app := &handlers.App{
		Logger:        logger,
		Tokens:        tokens,
		Donations:     repo.NewDonationRepository(dbpool),
		Batches:       repo.NewBatchRepository(dbpool),
		Users:         repo.NewUserRepository(dbpool),
		Gateway:       gateway,
		GatewaySecret: cfg.RazorpayKeySecret,
		Receipts:      receipts,
		Geo:           geo,
	}

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		Tokens:          tokens,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
