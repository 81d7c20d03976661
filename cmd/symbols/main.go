// Command symbols loads a YAML symbol catalog into the database used by the
// search endpoint. With -schedule it keeps running and reloads the file on
// that cron schedule.
//
// Usage:
//
//	symbols -file configs/symbols.yaml
//	symbols -file configs/symbols.yaml -schedule "@daily"
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashboard_backend/internal/app/di"
	"dashboard_backend/internal/feature/symbollist/adapters"
	"dashboard_backend/internal/feature/symbollist/domain/entity"
	"dashboard_backend/internal/feature/symbollist/usecase"
	"dashboard_backend/internal/platform/config"
	infradb "dashboard_backend/internal/platform/db"
	"dashboard_backend/internal/platform/scheduler"
)

func main() {
	file := flag.String("file", "configs/symbols.yaml", "YAML file with a top-level symbols list")
	schedule := flag.String("schedule", "", "cron spec for periodic reloads; empty runs once")
	flag.Parse()

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
	if !cfg.DatabaseEnabled() {
		log.Fatal("database.driver is not configured")
	}

	// カタログ投入時は常にテーブルを用意する
	gdb, err := infradb.OpenDB(di.DBConfig(cfg), true, &entity.Symbol{})
	if err != nil {
		log.Fatal(err)
	}
	uc := usecase.NewSymbolUsecase(di.NewSymbolRepository(gdb))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	importJob := func(ctx context.Context) error {
		symbols, err := adapters.LoadCatalogFile(*file)
		if err != nil {
			return err
		}
		if err := uc.ImportSymbols(ctx, symbols); err != nil {
			return err
		}
		active, err := uc.ListActiveSymbols(ctx)
		if err != nil {
			return err
		}
		log.Printf("[INFO] imported %d symbols, %d active in catalog", len(symbols), len(active))
		return nil
	}

	s := scheduler.New(ctx, 5*time.Minute)
	if err := s.RunNow("symbol-import", importJob); err != nil {
		log.Fatal(err)
	}
	if *schedule == "" {
		return
	}

	if err := s.Register(*schedule, "symbol-import", importJob); err != nil {
		log.Fatal(err)
	}
	s.Start()
	<-ctx.Done()
	s.Stop()
}
