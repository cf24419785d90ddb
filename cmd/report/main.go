// Command report writes the weekly sessions report of the persisted state
// without closing the week.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gym-ledger/internal/config"
	"gym-ledger/internal/database"
	"gym-ledger/internal/engine"
	"gym-ledger/internal/settlement"
	"gym-ledger/internal/storage"
	"gym-ledger/pkg/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "report:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(false)
	if err != nil {
		return err
	}

	var (
		stateDir  string
		outputDir string
		storeKind string
		stdout    bool
		full      bool
	)
	flags := pflag.NewFlagSet("report", pflag.ContinueOnError)
	flags.StringVar(&stateDir, "state-dir", cfg.StateDir, "directory of the persisted state blobs")
	flags.StringVarP(&outputDir, "output", "o", cfg.SettlementDir, "directory the report is written to")
	flags.StringVar(&storeKind, "storage", cfg.Storage, "state backend: file or postgres")
	flags.BoolVar(&stdout, "stdout", false, "print the report instead of writing a file")
	flags.BoolVar(&full, "full", false, "also write bills, payment notices and transfer records")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	zapLogger, err := logger.New(&cfg.Log, "gym-report")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()
	var store storage.Store
	switch storeKind {
	case config.StorageFile:
		store = storage.NewFileStore(stateDir)
	case config.StoragePostgres:
		db, err := database.New(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db.Blobs()
	default:
		return fmt.Errorf("unknown storage %q", storeKind)
	}

	state, err := storage.LoadState(ctx, store)
	if err != nil {
		zapLogger.Warn("state partially loaded", zap.Error(err))
	}
	eng := engine.New(engine.WithLogger(zapLogger))
	eng.Restore(state)

	snap := eng.Snapshot("on-demand")
	if stdout {
		fmt.Print(snap.Report.String())
		return nil
	}
	if !full {
		snap = settlement.Closing{RunID: snap.RunID, ClosedAt: snap.ClosedAt, Report: snap.Report}
	}
	if err := settlement.NewFileSink(outputDir).Write(ctx, snap); err != nil {
		return err
	}
	zapLogger.Info("report written", zap.String("dir", outputDir), zap.Bool("full", full))
	return nil
}
