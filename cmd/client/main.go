package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dmitrijs2005/healthplanner/internal/buildinfo"
	"github.com/dmitrijs2005/healthplanner/internal/client/cli"
	"github.com/dmitrijs2005/healthplanner/internal/client/client"
	"github.com/dmitrijs2005/healthplanner/internal/client/config"
	"github.com/dmitrijs2005/healthplanner/internal/client/credentials"
	"github.com/dmitrijs2005/healthplanner/internal/client/session"
	"github.com/dmitrijs2005/healthplanner/internal/filex"
	"github.com/dmitrijs2005/healthplanner/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	logDir, err := filex.EnsureDir(filepath.Join(dataDir, "logs"))
	if err != nil {
		return fmt.Errorf("log dir: %w", err)
	}

	logger, logCloser := logging.New(logging.Options{Dir: logDir, Debug: cfg.Debug})
	defer logCloser.Close()

	logger.Info(ctx, "starting", "api_base", cfg.APIBase, "credential_store", cfg.CredentialStore)

	store, storeCloser, err := credentials.Open(ctx, cfg.CredentialStore, dataDir)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer storeCloser.Close()

	api, err := client.NewHTTPClient(cfg.APIBase, store, cfg.RequestTimeout, logger)
	if err != nil {
		return err
	}

	ctl := session.NewController(api, store, logger)
	cli.NewApp(ctl, api, logger).Run(ctx)

	logger.Info(ctx, "stopped")
	return nil
}
