package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gtcli/internal/instrumentation"
	"github.com/teemow/gtcli/internal/tasks"
	"github.com/teemow/gtcli/internal/tools/tasks_tools"
)

func newServeCmd() *cobra.Command {
	var (
		yolo            bool
		metricsEnabled  bool
		metricsExporter string
		metricsAddr     string
		detailedLabels  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run gtcli as an MCP server",
		Long: `Start an MCP (Model Context Protocol) server on stdio exposing Google
Tasks operations as tools for AI assistants. Accounts must have been
authorized beforehand with 'gtcli accounts add'.

By default the server runs in read-only mode; pass --yolo to enable
write operations (create, update, complete, move, delete, clear).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			st, err := openStore(logger)
			if err != nil {
				return err
			}

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.Enabled = metricsEnabled
			instrConfig.ServiceVersion = version
			instrConfig.MetricsExporter = metricsExporter
			instrConfig.MetricsAddr = metricsAddr
			instrConfig.DetailedLabels = detailedLabels

			provider, err := instrumentation.NewProvider(cmd.Context(), instrConfig, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize instrumentation: %w", err)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = provider.Shutdown(shutdownCtx)
			}()
			provider.StartMetricsServer()

			mcpSrv := mcpserver.NewMCPServer("gtcli", version,
				mcpserver.WithToolCapabilities(true),
			)

			deps := &tasks_tools.Deps{
				Store:   st,
				Clients: tasks.NewClientCache(st, provider.Metrics(), logger),
				Metrics: provider.Metrics(),
				Logger:  logger,
			}

			// readOnly is the inverse of yolo
			if err := tasks_tools.Register(mcpSrv, deps, !yolo); err != nil {
				return err
			}

			if err := mcpserver.ServeStdio(mcpSrv); err != nil {
				return fmt.Errorf("server stopped with error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (default: read-only)")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics", false, "Enable OpenTelemetry metrics")
	cmd.Flags().StringVar(&metricsExporter, "metrics-exporter", instrumentation.ExporterPrometheus, "Metrics exporter: prometheus or stdout")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Prometheus scrape endpoint address")
	cmd.Flags().BoolVar(&detailedLabels, "metrics-detailed-labels", false, "Include anonymized account labels on metrics")

	return cmd
}
