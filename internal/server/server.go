// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noxasaxon/temporal-apig/internal/config"
	"github.com/noxasaxon/temporal-apig/internal/dispatch"
	"github.com/noxasaxon/temporal-apig/internal/logger"
	"github.com/noxasaxon/temporal-apig/internal/slack"
)

var (
	apiLog     *zerolog.Logger
	apiLogOnce sync.Once
)

func getLog() *zerolog.Logger {
	apiLogOnce.Do(func() {
		l := logger.GetAPILogger()
		apiLog = &l
	})
	return apiLog
}

// Server is the REST API gateway.
type Server struct {
	httpServer *http.Server
}

// NewRouter builds the chi router with all routes and middleware. Split out
// from New so tests can drive the router without a listener.
func NewRouter(cfg *config.ServerConfig, dispatcher dispatch.Dispatcher) chi.Router {
	handlers := NewHandlers(dispatcher)
	slackHandler := slack.NewHandler(dispatcher)

	r := chi.NewRouter()

	// Global middleware
	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(MaxBodySize(1 << 20)) // 1 MB default

	r.Route("/api/{version}", func(r chi.Router) {
		r.Use(ResolveAPIVersion)

		r.Get("/", handlers.VersionCheck)

		// Slack routes are separate so verification layers and a shared
		// client can attach here later without touching the temporal routes.
		r.Route("/slack", func(r chi.Router) {
			r.Post("/interaction", slackHandler.HandleInteraction)
		})

		r.Route("/temporal", func(r chi.Router) {
			r.With(RequireBearer(cfg.AuthToken)).Post("/interact", handlers.Interact)
			// routes below are not authenticated
			r.Post("/encode", handlers.Encode)
			r.Post("/decode", handlers.Decode)
		})
	})

	return r
}

// New creates and wires up the API server. It does NOT start listening —
// call Run() for that.
func New(cfg *config.ServerConfig, dispatcher dispatch.Dispatcher) *Server {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(cfg, dispatcher),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Run starts the HTTP server. Blocks until the server is shut down.
func (s *Server) Run() error {
	getLog().Info().Str("addr", s.httpServer.Addr).Msg("API gateway listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
