// Command revalue re-estimates the current values of one namespace's assets
// from each category's yearly depreciation rate.
//
// Usage:
//
//	revalue [-user ID | -uid UID | -email EMAIL] [-dry-run] [-timeout 1m] [-remote URL]
//
// With no identity flag the guest namespace is revalued. With -remote the
// run is delegated to a running API server through its maintenance endpoint,
// authenticated with MAINTENANCE_API_KEY; otherwise storage is opened directly.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetvault/internal/client"
	"assetvault/internal/config"
	"assetvault/internal/database"
	"assetvault/internal/identity"
	"assetvault/internal/logger"
	"assetvault/internal/portfolio"
	"assetvault/internal/revaluer"
	"assetvault/internal/storage"
)

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Revaluation error: %v", err)
	}
}

func run() error {
	var (
		ident   identity.Identity
		dryRun  bool
		timeout time.Duration
		remote  string
	)
	flag.StringVar(&ident.ID, "user", "", "user id of the namespace")
	flag.StringVar(&ident.UID, "uid", "", "external uid of the namespace")
	flag.StringVar(&ident.Email, "email", "", "email of the namespace")
	flag.BoolVar(&dryRun, "dry-run", false, "report changes without saving them")
	flag.DurationVar(&timeout, "timeout", time.Minute, "maximum run time")
	flag.StringVar(&remote, "remote", "", "base URL of a running API server")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var result *revaluer.RunResult
	if remote != "" {
		result, err = runRemote(ctx, cfg, remote, &ident, dryRun, timeout)
	} else {
		result, err = runLocal(ctx, cfg, &ident, dryRun)
	}
	if err != nil {
		return err
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	return out.Encode(result)
}

func runRemote(ctx context.Context, cfg *config.Config, baseURL string, ident *identity.Identity, dryRun bool, timeout time.Duration) (*revaluer.RunResult, error) {
	if cfg.MaintenanceAPIKey == "" {
		return nil, fmt.Errorf("MAINTENANCE_API_KEY is required with -remote")
	}
	c := client.NewMaintenanceClient(baseURL, cfg.MaintenanceAPIKey, &http.Client{Timeout: timeout})
	result, err := c.Revalue(ctx, client.RevalueRequest{
		UserID: ident.ID,
		UID:    ident.UID,
		Email:  ident.Email,
		DryRun: dryRun,
	})
	if err != nil {
		return nil, fmt.Errorf("remote revaluation failed: %w", err)
	}
	return result, nil
}

func runLocal(ctx context.Context, cfg *config.Config, ident *identity.Identity, dryRun bool) (*revaluer.RunResult, error) {
	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()
	if err := dbManager.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	kv, err := storage.Open(cfg, dbManager.DB())
	if err != nil {
		return nil, fmt.Errorf("failed to open asset storage: %w", err)
	}
	defer kv.Close()

	binder := identity.NewBinder(kv, cfg.StorageBaseKey, cfg.SeedDemoData)
	store := portfolio.NewStore(binder, portfolio.WithCurrency(cfg.Currency))
	if err := store.Load(ident); err != nil {
		return nil, fmt.Errorf("failed to load namespace: %w", err)
	}
	if err := store.Err(); err != nil {
		return nil, fmt.Errorf("namespace %s is unreadable: %w", store.Namespace(), err)
	}

	result, err := revaluer.New(store, revaluer.DryRun(dryRun)).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("revaluation of %s failed: %w", store.Namespace(), err)
	}
	if err := store.Err(); err != nil {
		return nil, fmt.Errorf("failed to save revalued assets: %w", err)
	}
	return result, nil
}
