// cmd/exprtree-server — HTTP tool server for exprtree
//
// Exposes the exprtree tools (render, diff, eval, ...) as an HTTP endpoint
// for agent frameworks.
//
// Usage:
//
//	go run ./cmd/exprtree-server -port 8080
//	go run ./cmd/exprtree-server -config server.yaml
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"errors"
	"flag"
	"net/http"
	"os"

	"github.com/hashicorp/go-hclog"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "exprtree-server",
		Level:      hclog.LevelFromString(cfg.LogLevel),
		Output:     os.Stderr,
		JSONFormat: cfg.LogJSON,
	})
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	srv := newServer(cfg, logger).httpServer()
	logger.Info("listening", "addr", cfg.Addr)
	logger.Info("  POST /tool   — execute a tool call")
	logger.Info("  GET  /schema — tool schema for agent registration")
	logger.Info("  GET  /health — health check")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
