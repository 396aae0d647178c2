package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniShop/internal/catalog"
	"MiniShop/internal/config"
	"MiniShop/internal/inventory"
	"MiniShop/internal/receipt"
	"MiniShop/internal/storefront"
	"MiniShop/pkg/kit"
)

const startupTimeout = 10 * time.Second

func main() {
	service := "storefront"

	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("MINISHOP_CONFIG"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		kit.NewLogger(service, "info").Fatal("load config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	src, closeCatalog := catalogSource(cfg, log)
	defer closeCatalog()

	records, err := src.Records(startCtx)
	if err != nil {
		log.Fatal("load catalog", zap.Error(err))
	}

	receipts, closeReceipts := receiptStore(startCtx, cfg, log)
	defer closeReceipts()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	coord, err := inventory.New(records,
		inventory.WithLogger(log),
		inventory.WithMetrics(reg),
	)
	if err != nil {
		log.Fatal("build catalog", zap.Error(err))
	}

	s := &storefront.Server{Coord: coord, Receipts: receipts, Log: log}
	h := storefront.NewHandler(s, storefront.HTTPDeps{
		Log:                log,
		Service:            service,
		Registry:           reg,
		MetricsEnabled:     cfg.Metrics.Enabled,
		MetricsToken:       cfg.Metrics.Token,
		MutationsPerMinute: cfg.Checkout.LimitPerMin,
	})

	if err := kit.RunHTTPServer(ctx, cfg.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func catalogSource(cfg config.Config, log *zap.Logger) (catalog.Source, func()) {
	if cfg.Catalog.DSN == "" {
		log.Info("catalog from file", zap.String("path", cfg.Catalog.Path))
		return catalog.FileSource{Path: cfg.Catalog.Path}, func() {}
	}

	db := openDB(cfg.Catalog.DSN, log)
	log.Info("catalog from postgres")
	return catalog.NewPostgresSource(db), func() { _ = db.Close() }
}

func receiptStore(ctx context.Context, cfg config.Config, log *zap.Logger) (receipt.Store, func()) {
	if cfg.Receipts.DSN == "" {
		log.Info("receipts in memory")
		return receipt.NewMemStore(), func() {}
	}

	db := openDB(cfg.Receipts.DSN, log)
	store := receipt.NewPostgresStore(db)
	if err := store.Ping(ctx); err != nil {
		log.Fatal("receipts db unreachable", zap.Error(err))
	}
	log.Info("receipts in postgres")
	return store, func() { _ = db.Close() }
}

func openDB(dsn string, log *zap.Logger) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal("open db", zap.Error(err))
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db
}
