package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym-ledger/internal/bot"
	"gym-ledger/internal/config"
	"gym-ledger/internal/cycle"
	"gym-ledger/internal/database"
	"gym-ledger/internal/engine"
	"gym-ledger/internal/handlers"
	"gym-ledger/internal/metrics"
	"gym-ledger/internal/settlement"
	"gym-ledger/internal/storage"
	"gym-ledger/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	saveInterval    = 5 * time.Minute
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load(true)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	zapLogger, err := logger.New(&cfg.Log, logger.DefaultServiceName)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	zap.ReplaceGlobals(zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store storage.Store = storage.NewFileStore(cfg.StateDir)
	var sink settlement.Sink = settlement.NewFileSink(cfg.SettlementDir)
	if cfg.Storage == config.StoragePostgres {
		db, err := database.New(cfg.DB)
		if err != nil {
			zap.L().Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		zap.L().Info("Running database migrations...")
		if err := db.RunMigrations(); err != nil {
			zap.L().Fatal("Failed to run migrations", zap.Error(err))
		}
		store = db.Blobs()
		sink = settlement.Tee{sink, db.Settlements()}
	}

	state, err := storage.LoadState(ctx, store)
	if err != nil {
		zap.L().Error("Some state could not be loaded; those parts start empty", zap.Error(err))
	}
	eng := engine.New(engine.WithLogger(zapLogger))
	eng.Restore(state)
	if len(state.Sessions) == 0 {
		eng.RefreshSessions()
	}

	metrics.Register()
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("Metrics server stopped", zap.Error(err))
		}
	}()

	cyc := cycle.New(eng, sink, cfg.Cycle, zapLogger)
	if err := cyc.Start(); err != nil {
		zap.L().Fatal("Failed to schedule the weekly boundary", zap.Error(err))
	}

	b, err := bot.New(cfg.BotToken, cfg.APIEndpoint, eng, cyc, cfg.DefaultAdminID)
	if err != nil {
		zap.L().Fatal("Failed to create bot", zap.Error(err))
	}

	go autosave(ctx, store, eng)
	go func() {
		<-ctx.Done()
		b.StopUpdates()
	}()

	zap.L().Info("Bot started successfully")

	for update := range b.Updates(60) {
		if update.Message != nil {
			if update.Message.IsCommand() {
				handlers.HandleCommand(b, update.Message)
			} else {
				handlers.HandleMessage(b, update.Message)
			}
		} else if update.CallbackQuery != nil {
			handlers.HandleCallbackQuery(b, update.CallbackQuery)
		}
	}

	zap.L().Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := cyc.Stop(shutdownCtx); err != nil {
		zap.L().Error("Pending settlements not written", zap.Error(err))
	}
	if err := storage.SaveState(shutdownCtx, store, eng.State()); err != nil {
		zap.L().Error("Failed to save state", zap.Error(err))
	}
	_ = metricsServer.Shutdown(shutdownCtx)
}

func autosave(ctx context.Context, store storage.Store, eng *engine.Engine) {
	ticker := time.NewTicker(saveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := storage.SaveState(ctx, store, eng.State()); err != nil {
				zap.L().Error("Periodic state save failed", zap.Error(err))
			}
		}
	}
}
