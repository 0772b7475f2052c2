package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/tunebridge/internal/server"
	"github.com/urfave/cli/v3"
)

// serveCommand starts the agent tool server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the JSON tool server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// Serve runs the tool server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := r.config.Server.Host
	if cmd.String("host") != "" {
		host = cmd.String("host")
	}
	port := r.config.Server.Port
	if cmd.Int("port") != 0 {
		port = int(cmd.Int("port"))
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	router := server.NewBasicRouter()
	router.Use(server.RequestIDMiddleware(), server.LoggingMiddleware(r.logger))
	router.Handler(server.NewToolHandler(
		r.library,
		r.directory,
		r.metadata,
		r.lyrics,
		r.validator,
		r.engine,
		r.logger,
	))

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("tool server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutting down tool server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}
