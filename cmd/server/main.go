package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"colonnes/internal/config"
	"colonnes/internal/httpx"
	"colonnes/internal/party"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args, os.Getenv)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Dev)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := party.NewRegistry(party.Options{
		Tick:       cfg.Tick,
		Seed:       cfg.Seed,
		MaxParties: cfg.MaxParties,
		Rules:      cfg.Rules,
	}, logger)
	defer reg.Close()

	srv := httpx.NewServer(reg, logger)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(cfg.Addr) }()

	logger.Info("server started",
		zap.String("addr", cfg.Addr),
		zap.Duration("tick", cfg.Tick),
		zap.Duration("opponent_delay", cfg.OpponentDelay),
	)

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Close(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	return <-errCh
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
