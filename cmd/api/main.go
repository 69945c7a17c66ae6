// @title                       Merchant Platform API
// @version                     1.0
// @description                 Provider login, role reconciliation and merchant-scoped shop, product and order management.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localmart/merchant-platform/internal/api"
	"github.com/localmart/merchant-platform/internal/api/handler"
	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/service"
	"github.com/localmart/merchant-platform/internal/infrastructure/db/mongo"
	"github.com/localmart/merchant-platform/internal/infrastructure/db/redis"
	"github.com/localmart/merchant-platform/internal/infrastructure/identity"
	"github.com/localmart/merchant-platform/internal/pkg/config"
	"github.com/localmart/merchant-platform/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		log := logger.Get()
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "merchant-platform",
	})

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	tokens, err := service.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token codec")
	}
	loginRole, err := domain.ParseRole(cfg.Auth.LoginRole)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid login role")
	}

	users := mongo.NewUserRepository(db)
	shops := mongo.NewShopRepository(db)
	products := mongo.NewProductRepository(db)
	orders := mongo.NewOrderRepository(db)

	authLog := logger.Component("auth")
	catalogLog := logger.Component("catalog")

	google := identity.NewGoogleVerifier(identity.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		UserInfoURL:  cfg.Google.UserInfoURL,
		AuthURL:      cfg.Google.AuthURL,
		TokenURL:     cfg.Google.TokenURL,
		Timeout:      cfg.Google.Timeout,
	}, authLog)

	reconciler := service.NewReconciler(users, authLog)

	router := api.NewRouter(api.Dependencies{
		Guard:     service.NewGuard(tokens, users, authLog),
		Auth:      service.NewAuthService(google, reconciler, tokens, users, loginRole, authLog),
		Throttle:  redis.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow),
		LoginURLs: google,
		Shops:     service.NewShopService(shops, catalogLog),
		Products:  service.NewProductService(products, shops, catalogLog),
		Orders:    service.NewOrderService(orders, shops, catalogLog),
		Dashboard: service.NewDashboardService(shops, orders, catalogLog),
		Ready: map[string]handler.Pinger{
			"mongodb": mongo.NewPinger(mongoClient),
			"redis":   redis.NewPinger(rdb),
		},
		CORSOrigins: cfg.CORS.AllowOrigins,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
	log.Info().Msg("server stopped")
}
