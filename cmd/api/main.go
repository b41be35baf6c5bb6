package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamestore/admin-backend/api"
	"github.com/gamestore/admin-backend/api/middleware"
	"github.com/gamestore/admin-backend/api/routes"
	"github.com/gamestore/admin-backend/internal/accounts"
	"github.com/gamestore/admin-backend/internal/auth"
	"github.com/gamestore/admin-backend/internal/coupons"
	"github.com/gamestore/admin-backend/internal/products"
	"github.com/gamestore/admin-backend/internal/servers"
	"github.com/gamestore/admin-backend/pkg/auth/session"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/db"
	"github.com/gamestore/admin-backend/pkg/logger"
	redisclient "github.com/gamestore/admin-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		stderr("loading config: " + err.Error())
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "gamestore-admin-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "fatal", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	redisClient, err := redisclient.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	sessions, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	accountsRepo := accounts.NewRepository(dbClient.DB())
	serversRepo := servers.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	couponsRepo := coupons.NewRepository(dbClient.DB())

	accountsSvc := accounts.NewService(accountsRepo, cfg.Password)
	serversSvc := servers.NewService(serversRepo)
	productsSvc := products.NewService(productsRepo, serversRepo, dbClient)
	couponsSvc := coupons.NewService(couponsRepo)
	authSvc := auth.NewService(accountsSvc, sessions, cfg.JWT)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewHTTPMetrics(registry)

	handler := routes.New(routes.Dependencies{
		Config:         cfg,
		Logger:         logg,
		Sessions:       sessions,
		Metrics:        metrics,
		DB:             dbClient,
		Redis:          redisClient,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Accounts:       accountsSvc,
		Servers:        serversSvc,
		Products:       productsSvc,
		Coupons:        couponsSvc,
		Auth:           authSvc,
	})

	server := api.NewServer(cfg.App, handler, logg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		err = multierr.Append(err, server.Shutdown(context.Background()))
		err = multierr.Append(err, <-errCh)
	case serveErr := <-errCh:
		err = multierr.Append(err, serveErr)
	}
	return err
}

func stderr(msg string) {
	_, _ = os.Stderr.WriteString(msg + "\n")
}
