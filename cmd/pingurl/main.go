package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/drblury/pingurl/action"
	"github.com/drblury/pingurl/config"
	"github.com/drblury/pingurl/logging"
	"github.com/drblury/pingurl/workflow"
)

func main() {
	// Local runs may keep inputs in .env; variables already set take precedence.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Init(os.Stdout, false)
		fail("Invalid configuration", err)
	}

	logger := logging.Init(os.Stdout, cfg.Debug)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("Could not load .env", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("Probing target",
		"url", cfg.TargetURL,
		"delay", cfg.Delay,
		"max_attempts", cfg.MaxAttempts,
		"timeout", cfg.Timeout,
		"expected_status", cfg.ExpectedStatuses,
	)

	if err := action.Run(ctx, cfg, action.WithLogger(logger)); err != nil {
		stop()
		fail("Probe failed", err)
	}
}

func fail(msg string, err error) {
	_ = workflow.Error(os.Stdout, err.Error())
	slog.Error(msg, "error", err)
	os.Exit(1)
}
