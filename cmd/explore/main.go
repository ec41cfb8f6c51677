package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"travel/internal/app"
	"travel/internal/config"
	"travel/internal/logger"
	"travel/internal/render"
	"travel/internal/session"
	"travel/pkg/graceful"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, `usage: explore <query>   e.g. explore "I'm going to Paris!"`)
		os.Exit(2)
	}
	query := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	// Keep stdout for the card; logs go to stderr.
	log := logger.Must(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start", zap.Error(err))
	}
	defer a.Close()

	state, _ := session.State{}.Submit()
	result, err := a.Explorer.Explore(ctx, query)
	if err != nil {
		state = state.Fail(err)
	} else {
		state = state.Succeed(result)
	}

	if err := render.Text(os.Stdout, state); err != nil {
		log.Error("failed to write output", zap.Error(err))
	}
	if state.Error != "" {
		a.Close()
		os.Exit(1)
	}
}
