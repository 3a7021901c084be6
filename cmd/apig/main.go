// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noxasaxon/temporal-apig/internal/config"
	"github.com/noxasaxon/temporal-apig/internal/dispatch"
	"github.com/noxasaxon/temporal-apig/internal/logger"
	"github.com/noxasaxon/temporal-apig/internal/server"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.NewConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.CloseGlobal()

	mainLog := logger.GetLogger("main")
	mainLog.Info().Msg("Starting temporal-apig gateway")

	temporalClient, err := dispatch.NewClient(&cfg.Temporal)
	if err != nil {
		mainLog.Error().Err(err).Msg("Error connecting to Temporal")
		fmt.Fprintf(os.Stderr, "Error connecting to Temporal: %v\n", err)
		os.Exit(1)
	}
	defer temporalClient.Close()

	srv := server.New(&cfg.Server, temporalClient)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- srv.Run()
	}()

	// Wait for signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		mainLog.Info().Msgf("Received signal %v, shutting down...", sig)
	case err := <-serverErrChan:
		if err != nil {
			mainLog.Error().Err(err).Msg("Server error")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		mainLog.Error().Err(err).Msg("Error shutting down server")
	}

	mainLog.Info().Msg("Gateway shut down")
}
