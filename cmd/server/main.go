package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/oracle-bridge/oracle-bridge/internal/api/http"
	appAccount "github.com/oracle-bridge/oracle-bridge/internal/application/account"
	appContract "github.com/oracle-bridge/oracle-bridge/internal/application/contract"
	"github.com/oracle-bridge/oracle-bridge/internal/application/gateway"
	appNonce "github.com/oracle-bridge/oracle-bridge/internal/application/nonce"
	appPrice "github.com/oracle-bridge/oracle-bridge/internal/application/price"
	"github.com/oracle-bridge/oracle-bridge/internal/config"
	domainAccount "github.com/oracle-bridge/oracle-bridge/internal/domain/account"
	domainContract "github.com/oracle-bridge/oracle-bridge/internal/domain/contract"
	domainNonce "github.com/oracle-bridge/oracle-bridge/internal/domain/nonce"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
	"github.com/oracle-bridge/oracle-bridge/internal/infrastructure/bolt"
	"github.com/oracle-bridge/oracle-bridge/internal/infrastructure/evmrpc"
	"github.com/oracle-bridge/oracle-bridge/internal/infrastructure/postgres"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()

	// repositories
	var (
		accountRepo  domainAccount.Repository
		contractRepo domainContract.Repository
		nonceRepo    domainNonce.Repository
		priceRepo    pricepair.Repository
		closeStore   func() error
	)
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("schema error: %v", err)
		}
		store := postgres.NewStore(pool, cfg.MaxPriceHistory)
		accountRepo, contractRepo, nonceRepo, priceRepo = store, store.ContractCells(), store, store
		closeStore = func() error { pool.Close(); return nil }
	default:
		store, err := bolt.Open(cfg.BoltPath, cfg.MaxPriceHistory)
		if err != nil {
			log.Fatalf("store error: %v", err)
		}
		accountRepo, contractRepo, nonceRepo, priceRepo = store, store.ContractCells(), store, store
		closeStore = store.Close
	}
	defer func() { _ = closeStore() }()

	// infrastructure
	host, err := evmrpc.Dial(ctx, cfg.HostRPCURL, logger)
	if err != nil {
		log.Fatalf("host rpc error: %v", err)
	}
	defer host.Close()

	// services
	nonceCoord := appNonce.NewCoordinator(nonceRepo, logger)
	gw := gateway.NewService(host, nonceCoord, accountRepo, logger)
	accountSvc := appAccount.NewService(accountRepo, gw, logger)
	contractSvc := appContract.NewService(contractRepo, gw, logger)
	priceSvc := appPrice.NewService(priceRepo, contractSvc, cfg.AlertRules, logger)

	// API server
	apiServer := httpapi.NewServer(accountSvc, contractSvc, priceSvc, cfg.OwnerTokenHash)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// background loops
	go func() {
		ticker := time.NewTicker(cfg.PriceRefreshInterval)
		defer ticker.Stop()
		for range ticker.C {
			refreshPrices(context.Background(), cfg, priceSvc, logger)
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.AnswerPushInterval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := priceSvc.PushAnswers(context.Background()); err != nil {
				if !errors.Is(err, domainContract.ErrNotDeployed) {
					logger.Error().Err(err).Msg("periodic answer push failed")
				}
			}
		}
	}()

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}

// refreshPrices pulls fresh quotes for every tracked pair from the
// configured feed.
func refreshPrices(ctx context.Context, cfg *config.Config, priceSvc *appPrice.Service, logger zerolog.Logger) {
	pairs, err := priceSvc.Pairs(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list pairs for refresh")
		return
	}
	if len(pairs) == 0 {
		return
	}
	switch cfg.PriceFeedSource {
	case "coinbase":
		for _, pair := range pairs {
			if err := priceSvc.RefreshCoinbase(ctx, pair); err != nil {
				logger.Error().Err(err).Str("pair", pair).Msg("coinbase refresh failed")
			}
		}
	default:
		if err := priceSvc.RefreshCoingecko(ctx, pairs); err != nil {
			logger.Error().Err(err).Msg("coingecko refresh failed")
		}
	}
}
