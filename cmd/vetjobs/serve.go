package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_vetjobs/internal/api"
	"github.com/anatolykoptev/go_vetjobs/internal/app"
)

func newServeAPICmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve-api",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing /health, /api/metrics and POST /api/jobs/{search,match,recommend}.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c := app.ConfigFromEnv()
			app.InitEngine(c)
			a, err := app.New(ctx, c)
			if err != nil {
				return err
			}
			defer a.Close()

			return serveAPI(ctx, net.JoinHostPort("", port), api.NewServer(a.Service).Router())
		},
	}
	cmd.Flags().StringVar(&port, "port", env.Str("API_PORT", "8892"), "Port to listen on")
	return cmd
}

// serveAPI runs h on addr until ctx is done, then shuts down gracefully.
func serveAPI(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("api: listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
