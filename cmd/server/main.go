package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/compliance-audit/internal/app"
	"github.com/Spok95/compliance-audit/internal/config"
	"github.com/Spok95/compliance-audit/internal/db"
	"github.com/Spok95/compliance-audit/internal/engine"
	"github.com/Spok95/compliance-audit/internal/jobs"
	"github.com/Spok95/compliance-audit/internal/logging"
	"github.com/Spok95/compliance-audit/internal/observability"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("нет .env файла, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("конфигурация: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("логгер: %v", err)
	}
	defer lg.Closer()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, os.Getenv("RELEASE"))
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Base.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(ctx, database); err != nil {
		lg.Base.Fatal("db migrate", zap.Error(err))
	}

	store := db.NewStore(database)
	manager := engine.NewManager(store, lg.Base, cfg.PassThreshold)
	api := app.NewAPI(database, store, manager, lg.Base)

	app.StartHTTP(ctx, cfg.HTTPAddr, database, api)
	lg.Sugar.Infow("http server started", "addr", cfg.HTTPAddr)

	runner := jobs.New(ctx)
	runner.Every(time.Minute, "pending_audits_gauge", jobs.RefreshPendingGauge(database))

	<-ctx.Done()
	lg.Sugar.Info("shutting down")
}
