// Package main is the entry point for the lich API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/zapponejosh/lich-api/internal/almanac"
	"github.com/zapponejosh/lich-api/internal/api"
	"github.com/zapponejosh/lich-api/internal/calendar"
	"github.com/zapponejosh/lich-api/internal/config"
	"github.com/zapponejosh/lich-api/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	log.Info("starting lich API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.String("timezone", cfg.Timezone),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("lich API stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	svc := almanac.NewService(calendar.NewLunarGoOracle(), almanac.Options{
		Location:     cfg.Location(),
		MemoSize:     cfg.CanChiMemoSize,
		MaxRangeDays: cfg.MaxRangeDays,
		CalendarName: cfg.ICSCalendarName,
	})
	handlers := api.NewHandlers(svc, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverError := make(chan error, 1)
	go func() {
		log.Info("lich API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
		close(serverError)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err, ok := <-serverError:
		if !ok {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	}
}
