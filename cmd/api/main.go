package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/southsteak/ordering-backend/api/routes"
	authsvc "github.com/southsteak/ordering-backend/internal/auth"
	cartsvc "github.com/southsteak/ordering-backend/internal/cart"
	categoriessvc "github.com/southsteak/ordering-backend/internal/categories"
	checkoutsvc "github.com/southsteak/ordering-backend/internal/checkout"
	"github.com/southsteak/ordering-backend/internal/cron"
	menusvc "github.com/southsteak/ordering-backend/internal/menu"
	pmsvc "github.com/southsteak/ordering-backend/internal/paymentmethods"
	settingssvc "github.com/southsteak/ordering-backend/internal/settings"
	"github.com/southsteak/ordering-backend/pkg/config"
	"github.com/southsteak/ordering-backend/pkg/db"
	"github.com/southsteak/ordering-backend/pkg/logger"
	"github.com/southsteak/ordering-backend/pkg/metrics"
	"github.com/southsteak/ordering-backend/pkg/migrate"
	"github.com/southsteak/ordering-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	authService, err := authsvc.NewService(cfg.Admin, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	categoriesRepo := categoriessvc.NewRepository(dbClient.DB())
	categoriesService, err := categoriessvc.NewService(categoriesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create categories service", err)
		os.Exit(1)
	}

	menuRepo := menusvc.NewRepository(dbClient.DB())
	menuService, err := menusvc.NewService(menuRepo, dbClient, categoriesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}

	cartStore := cartsvc.NewRedisStore(redisClient, cfg.Cart.TTL)
	cartService, err := cartsvc.NewService(cartStore, menuService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	paymentMethodsService, err := pmsvc.NewService(pmsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create payment methods service", err)
		os.Exit(1)
	}

	settingsService, err := settingssvc.NewService(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartService, paymentMethodsService, settingsService, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	cronService, err := buildCronService(cfg, logg, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			Auth:           authService,
			Menu:           menuService,
			Categories:     categoriesService,
			PaymentMethods: paymentMethodsService,
			Settings:       settingsService,
			Cart:           cartService,
			Checkout:       checkoutService,
			Cron:           cronService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}

func buildCronService(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (*cron.Service, error) {
	job, err := cron.NewDBHealthJob(cron.DBHealthJobParams{
		Logger: logg,
		Probe:  cron.NewGormHealthProbe(dbClient.DB()),
		Redis:  redisClient,
	})
	if err != nil {
		return nil, err
	}

	registry := cron.NewRegistry()
	registry.Register(job)

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("db-health"), 0)
	if err != nil {
		return nil, err
	}

	return cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
}
