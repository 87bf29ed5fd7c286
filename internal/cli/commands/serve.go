package commands

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/session"
	"github.com/fieldmark/designer/internal/web/api"
	"github.com/fieldmark/designer/internal/web/auth"
	"github.com/fieldmark/designer/internal/web/events"
	"github.com/fieldmark/designer/internal/web/server"
)

// NewServeCommand creates the serve command
func NewServeCommand(app *App) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the designer HTTP API",
		Long: `Serve editing sessions over HTTP.

Clients open a session on a notebook, apply operations to it, undo and redo
them, and follow every change over a websocket. Set auth.secret to require
bearer tokens (see "designer token").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return runServe(cmd.Context(), app)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "interface to listen on (overrides server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	return cmd
}

func runServe(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := app.Config
	logger := app.Logger

	hub := events.NewHub(ctx, logger)
	go hub.Run()

	sessions := session.NewManager(nil, session.Options{
		HistoryDepth: cfg.History.Depth,
		Logger:       logger,
		Listener:     hub.Listener(),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := api.Options{
		Prefix:       cfg.Server.APIPrefix,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Logger:       logger,
		Hub:          hub,
		Events:       events.DefaultConfig(),
		Registry:     registry,
	}
	if cfg.Auth.Secret != "" {
		opts.Auth = auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	} else {
		logger.Warn("authentication disabled, set auth.secret to require tokens")
	}

	srv, err := server.New(server.DefaultConfig(cfg.Server.Address(), api.New(sessions, opts).Router()))
	if err != nil {
		return err
	}

	shutdown := server.NewGracefulShutdown(srv, &server.ShutdownConfig{
		Timeout: cfg.Server.ShutdownTimeout,
		Logger:  logger,
	})
	shutdown.RegisterHook(func(context.Context) error {
		logger.Info("closing event streams", zap.Int("clients", hub.ClientCount("")))
		hub.Shutdown()
		return nil
	})

	return shutdown.Run(ctx)
}
