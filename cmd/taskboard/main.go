package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/cli"
	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		return 1
	}

	db, err := repository.NewDB(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("db", "err", err)
		return 1
	}

	board, err := service.OpenBoard(ctx, repository.NewSlotRepository(db), logger)
	if err != nil {
		logger.Error("open board", "err", err)
		return 1
	}
	defer func() {
		if err := board.Close(); err != nil {
			logger.Error("close board", "err", err)
		}
	}()

	app := cli.New(board, cfg, logger, os.Stdout)
	if err := app.Run(ctx, os.Args[1:]); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, cli.Describe(err))
		return 1
	}
	return 0
}
