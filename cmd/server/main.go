// Package main is the entry point for the locafest API server.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"locafest/internal/config"
	"locafest/internal/domain/cashflow"
	"locafest/internal/domain/client"
	"locafest/internal/domain/event"
	"locafest/internal/domain/kit"
	"locafest/internal/domain/material"
	"locafest/internal/domain/pricelist"
	"locafest/internal/domain/quote"
	"locafest/internal/domain/report"
	"locafest/internal/domain/user"
	"locafest/internal/infrastructure/cep"
	"locafest/internal/infrastructure/files"
	v1 "locafest/internal/infrastructure/http/v1"
	"locafest/internal/infrastructure/mailer"
	"locafest/internal/infrastructure/storage/postgres"
	"locafest/migrations"
	"locafest/pkg/logger"
)

func main() {
	configPath := os.Getenv("APP_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.Env == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting locafest server")

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}
	log.Info("database schema up to date")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Postgres.DSN))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	// Repositories
	materialRepo := postgres.NewMaterialRepo(txm)
	kitRepo := postgres.NewKitRepo(txm)
	clientRepo := postgres.NewClientRepo(txm)
	quoteRepo := postgres.NewQuoteRepo(txm)
	eventRepo := postgres.NewEventRepo(txm)
	cashRepo := postgres.NewCashFlowRepo(txm)
	priceRepo := postgres.NewPriceListRepo(txm)
	userRepo := postgres.NewUserRepo(txm)
	reportRepo := postgres.NewReportRepo(txm)
	activityLog := postgres.NewActivityLog(pool.Pool)

	images, err := files.NewStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalw("failed to initialize upload storage", "error", err)
	}

	// Services
	jwtCfg := user.DefaultJWTConfig(cfg.Auth.JWTSecret)
	if cfg.Auth.TokenTTL > 0 {
		jwtCfg.TokenTTL = cfg.Auth.TokenTTL
	}
	jwtService := user.NewJWTService(jwtCfg)
	userService := user.NewService(userRepo, jwtService)

	cashService := cashflow.NewService(cashRepo)
	materialService := material.NewService(materialRepo, cashService, images, activityLog, txm)
	kitService := kit.NewService(kitRepo, materialService, images, activityLog, txm)
	clientService := client.NewService(clientRepo, cep.New(cfg.CEP.BaseURL, cfg.CEP.Timeout))
	eventService := event.NewService(eventRepo, materialService, kitService, cashService, quoteRepo, activityLog, txm)
	quoteService := quote.NewService(quoteRepo, materialService, kitService, clientService,
		eventService, mailer.New(cfg), activityLog, txm)
	priceService := pricelist.NewService(priceRepo)
	reportService := report.NewService(reportRepo, cashService, materialService)

	router := v1.NewRouter(v1.RouterConfig{
		Config:    cfg,
		Logger:    log,
		Pool:      pool,
		Users:     userService,
		JWT:       jwtService,
		Materials: materialService,
		Kits:      kitService,
		Clients:   clientService,
		Quotes:    quoteService,
		Events:    eventService,
		CashFlow:  cashService,
		Prices:    priceService,
		Activity:  activityLog,
		Reports:   reportService,
		Images:    images,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
