// Package main provides the entry point for the medmcp server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/medmcp/medmcp-go/internal/config"
	"github.com/medmcp/medmcp-go/internal/fetch"
	"github.com/medmcp/medmcp-go/internal/metrics"
	"github.com/medmcp/medmcp-go/internal/server"
	"github.com/medmcp/medmcp-go/internal/sources/openfda"
	"github.com/medmcp/medmcp-go/internal/sources/pubmed"
	"github.com/medmcp/medmcp-go/internal/sources/rxnorm"
	"github.com/medmcp/medmcp-go/internal/sources/scholar"
	"github.com/medmcp/medmcp-go/internal/sources/who"
	"github.com/medmcp/medmcp-go/internal/tools"
)

const version = "0.1.0"

// upstreamTimeout bounds each upstream API request. No retries: a failed
// fetch surfaces as an error result for that single invocation.
const upstreamTimeout = 30 * time.Second

var (
	envFile string
	addr    string
)

var rootCmd = &cobra.Command{
	Use:   "medmcp",
	Short: "MCP server exposing medical and health data-source tools",
	Long: `medmcp serves MCP tools for querying medical data sources:
FDA drug labels, WHO health statistics, RxNorm drug nomenclature,
PubMed literature, and Google Scholar.

The streamable-HTTP transport is gated by a static bearer token.
MEDMCP_AUTH_TOKEN and MEDMCP_MY_NUMBER must be set (a .env file is
read if present).`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "environment file to load before reading config")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides MEDMCP_LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Missing .env is fine; explicit values win over file values.
	if err := godotenv.Load(envFile); err != nil && envFile != ".env" {
		return fmt.Errorf("load env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("medmcp starting",
		"version", version,
		"addr", cfg.ListenAddr,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Source clients share one fetch client; the scholar scraper gets its
	// own delay interval from config.
	fetcher := fetch.NewClient(upstreamTimeout)
	deps := &tools.Dependencies{
		FDA:     openfda.NewClient(fetcher, ""),
		WHO:     who.NewClient(fetcher, ""),
		RxNorm:  rxnorm.NewClient(fetcher, ""),
		PubMed:  pubmed.NewClient(fetcher, ""),
		Scholar: scholar.NewClient(fetcher, "", cfg.ScholarMinDelay, cfg.ScholarMaxDelay, logger),
		Logger:  logger,
	}

	collector := metrics.NewCollector()
	srv := server.New(version, cfg, logger, collector)
	srv.Setup()

	tools.RegisterAll(srv.MCPServer(), deps, cfg)
	logger.Info("tools registered", "count", 7)

	logger.Info("server ready, awaiting connections")

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}

	snap := collector.Snapshot()
	logger.Info("shutdown complete", "uptime_seconds", snap.UptimeSeconds, "methods_served", len(snap.Methods))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
