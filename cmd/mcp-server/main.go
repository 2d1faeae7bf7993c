// Package main starts the validate_mtb_file MCP server over stdio.
// The validator needs no database, so this entrypoint only loads the
// clinical code catalogs via the lightweight configuration.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/CCC-MF/mtb-validator/internal/catalog"
	"github.com/CCC-MF/mtb-validator/internal/config"
	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/mcp"
	"github.com/CCC-MF/mtb-validator/internal/setup"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		cli := setup.NewCLI("mcp-server")
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		return
	}

	cfg := config.LoadLiteConfig()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	static, err := catalog.LoadStaticCatalog(cfg.ICD10GMPath, cfg.ICDO3Path, cfg.ATCPath)
	if err != nil {
		log.Fatalf("Failed to load clinical catalogs: %v", err)
	}

	server := mcp.NewServer(domain.MCPConfig{
		ServerName:    "mtb-validator",
		ServerVersion: "v0.1.0",
	}, static, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down MCP server...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatalf("MCP server failed: %v", err)
	}

	logger.Info("MTB file validator MCP server stopped")
}
