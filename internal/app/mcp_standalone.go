package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pagebuilder/internal/config"
	mcpserver "pagebuilder/internal/mcp"
	"pagebuilder/internal/service"
	"pagebuilder/internal/telemetry"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// Published pages are written to the publish directory but not opened.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	// stdout carries the MCP protocol, so logs go to stderr.
	logger := telemetry.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	eng, err := openEngine(ctx, cfg, logger, service.NoopEmitter{}, nil)
	if err != nil {
		log.Fatalf("Failed to open layout store: %v", err)
	}
	defer eng.Close()

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Layouts: eng.layouts,
		Logger:  logger,
	})

	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
