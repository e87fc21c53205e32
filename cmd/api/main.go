package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hkfashion/storefront-backend/api/routes"
	authsvc "github.com/hkfashion/storefront-backend/internal/auth"
	cartsvc "github.com/hkfashion/storefront-backend/internal/cart"
	catalogsvc "github.com/hkfashion/storefront-backend/internal/catalog"
	checkoutsvc "github.com/hkfashion/storefront-backend/internal/checkout"
	orderssvc "github.com/hkfashion/storefront-backend/internal/orders"
	pagessvc "github.com/hkfashion/storefront-backend/internal/pages"
	userssvc "github.com/hkfashion/storefront-backend/internal/users"
	"github.com/hkfashion/storefront-backend/pkg/config"
	"github.com/hkfashion/storefront-backend/pkg/db"
	"github.com/hkfashion/storefront-backend/pkg/logger"
	"github.com/hkfashion/storefront-backend/pkg/metrics"
	"github.com/hkfashion/storefront-backend/pkg/migrate"
	"github.com/hkfashion/storefront-backend/pkg/redis"
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

	catalogRepo := catalogsvc.NewRepository(dbClient.DB())
	usersRepo := userssvc.NewRepository(dbClient.DB())
	ordersRepo := orderssvc.NewRepository(dbClient.DB())
	pagesRepo := pagessvc.NewRepository(dbClient.DB())

	catalogService, err := catalogsvc.NewService(catalogRepo, cfg.Catalog)
	fatalOnErr(logg, "catalog service", err)

	cartStore, err := cartsvc.NewRedisStore(redisClient, cfg.Session)
	fatalOnErr(logg, "cart store", err)
	cartService, err := cartsvc.NewService(cartStore, catalogRepo)
	fatalOnErr(logg, "cart service", err)

	usersService, err := userssvc.NewService(usersRepo, dbClient, cfg.Password)
	fatalOnErr(logg, "users service", err)

	authService, err := authsvc.NewService(usersRepo, cfg.JWT)
	fatalOnErr(logg, "auth service", err)

	ordersService, err := orderssvc.NewService(ordersRepo, cfg.Catalog.PageSize)
	fatalOnErr(logg, "orders service", err)

	checkoutService, err := checkoutsvc.NewService(dbClient, cartService, ordersRepo, catalogRepo, usersService, logg)
	fatalOnErr(logg, "checkout service", err)

	pagesService, err := pagessvc.NewService(pagesRepo)
	fatalOnErr(logg, "pages service", err)

	if cfg.FeatureFlags.SeedDefaults {
		if err := pagessvc.EnsureDefaults(context.Background(), pagesRepo, dbClient); err != nil {
			logg.Error(context.Background(), "failed to seed default pages", err)
			os.Exit(1)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: metrics.NewHTTPMetrics(),
			Catalog:     catalogService,
			Cart:        cartService,
			Checkout:    checkoutService,
			Orders:      ordersService,
			Users:       usersService,
			Auth:        authService,
			Pages:       pagesService,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "server shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

func fatalOnErr(logg *logger.Logger, component string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+component, err)
	os.Exit(1)
}
