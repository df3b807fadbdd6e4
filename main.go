// go_vetjobs: veteran job search and ranking MCP server.
//
// Exposes three MCP tools: vet_job_search, vet_job_match, vet_job_recommend.
// Runs as HTTP MCP server or stdio transport. Set API_PORT to also serve the REST API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_vetjobs/internal/api"
	"github.com/anatolykoptev/go_vetjobs/internal/app"
	"github.com/anatolykoptev/go_vetjobs/internal/engine"
	"github.com/anatolykoptev/go_vetjobs/internal/jobserver"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	app.InitLogger()

	mcpPort := env.Str("MCP_PORT", "8891")
	c := app.ConfigFromEnv()
	app.InitEngine(c)

	a, err := app.New(context.Background(), c)
	if err != nil {
		slog.Error("job service init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer a.Close()

	slog.Info("starting go_vetjobs", slog.String("port", mcpPort))

	if apiPort := env.Str("API_PORT", ""); apiPort != "" {
		go serveAPI(net.JoinHostPort("", apiPort), api.NewServer(a.Service).Router())
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_vetjobs",
		Version: version,
	}, nil)

	jobserver.RegisterTools(server, a.Service)
	slog.Info("tools registered", slog.Int("count", jobserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_vetjobs",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func serveAPI(addr string, h http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	slog.Info("api: listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("api server failed", slog.Any("error", err))
	}
}
