package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"MiniShop/internal/catalog"
	"MiniShop/internal/config"
	"MiniShop/internal/console"
	"MiniShop/internal/inventory"
	"MiniShop/internal/receipt"
	"MiniShop/pkg/kit"
)

func main() {
	var (
		configPath string
		itemsPath  string
	)
	flag.StringVar(&configPath, "config", os.Getenv("MINISHOP_CONFIG"), "path to config file")
	flag.StringVar(&itemsPath, "items", "", "catalog file, overrides catalog.path")
	flag.Parse()

	if err := run(configPath, itemsPath); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath, itemsPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if itemsPath != "" {
		cfg.Catalog.Path = itemsPath
	}

	log := kit.NewLogger("shop", cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	records, err := catalog.FileSource{Path: cfg.Catalog.Path}.Records(ctx)
	if err != nil {
		return fmt.Errorf("could not load %s: %w", cfg.Catalog.Path, err)
	}

	coord, err := inventory.New(records, inventory.WithLogger(log))
	if err != nil {
		return err
	}

	opts := []console.Option{console.WithLogger(log)}
	if cfg.Receipts.DSN != "" {
		db, err := sql.Open("pgx", cfg.Receipts.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		store := receipt.NewPostgresStore(db)
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("receipts db: %w", err)
		}
		opts = append(opts, console.WithReceipts(store))
	}

	err = console.NewSession(coord, os.Stdout, opts...).Run(ctx, os.Stdin)
	if err != nil && ctx.Err() == nil {
		return err
	}
	log.Debug("session ended", zap.Error(err))
	return nil
}
