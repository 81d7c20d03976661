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

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"dashboard_backend/internal/app/di"
	"dashboard_backend/internal/app/router"
	quotehandler "dashboard_backend/internal/feature/quotes/transport/handler"
	quoteusecase "dashboard_backend/internal/feature/quotes/usecase"
	symbolentity "dashboard_backend/internal/feature/symbollist/domain/entity"
	symbollisthandler "dashboard_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "dashboard_backend/internal/feature/symbollist/usecase"
	"dashboard_backend/internal/platform/config"
	infradb "dashboard_backend/internal/platform/db"
	platformhandler "dashboard_backend/internal/platform/http/handler"
	infraredis "dashboard_backend/internal/platform/redis"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	checks := map[string]platformhandler.Checker{}

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		tmp, err := infraredis.NewRedisClient(context.Background(), infraredis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Println("[WARN] Redis unavailable. Keeping quote state in memory.")
		} else {
			rdb = tmp
			checks["redis"] = infraredis.Ping(rdb)
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// db（銘柄カタログ用、未設定なら空のカタログ）
	var gdb *gorm.DB
	if cfg.DatabaseEnabled() {
		gdb, err = infradb.OpenDB(di.DBConfig(cfg), cfg.Database.Migrate, &symbolentity.Symbol{})
		if err != nil {
			log.Fatal(err)
		}
		checks["database"] = infradb.Ping(gdb)
	} else {
		log.Println("[WARN] No database configured. Symbol search returns no suggestions.")
	}

	// Repository
	market, err := di.NewMarket(cfg)
	if err != nil {
		log.Fatal(err)
	}
	stateRepo := di.NewQuoteStateRepository(rdb, cfg.Redis.StateTTL)
	symbolRepo := di.NewSymbolRepository(gdb)

	// Usecase
	quoteUC := quoteusecase.NewQuoteUsecase(market, stateRepo, quoteusecase.Config{
		Timeout:     cfg.Upstream.Timeout,
		StrictShape: cfg.Quotes.StrictShape,
	})
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)

	// Handler
	healthH := platformhandler.NewHealthHandler(checks)
	quoteH := quotehandler.NewQuoteHandler(quoteUC)
	symbolH := symbollisthandler.NewSymbolHandler(symbolUC)

	// ルータ生成
	r := router.NewRouter(healthH, quoteH, symbolH)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[INFO] listening on %s (provider=%s)", cfg.Server.Addr, cfg.Upstream.Provider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	sig := <-done
	log.Printf("[INFO] got signal: %s", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Println("[ERROR] http server shutdown failed:", err)
	}
}
