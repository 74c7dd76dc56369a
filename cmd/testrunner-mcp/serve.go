package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	testrunner "github.com/applitest/testrunner-mcp"
	"github.com/applitest/testrunner-mcp/internal/cli"
	httpadapter "github.com/applitest/testrunner-mcp/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over HTTP",
	Long: `Starts the HTTP server: streamable MCP at /mcp, SSE at /sse and /message,
plus /health, /api/info, /metrics and a dashboard at /.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		app, err := cli.NewApp(cfg, testrunner.Version, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(context.Background()); err != nil {
				logger.Error("Shutdown failed", "err", err)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		baseURL := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
		if err := httpadapter.Serve(ctx, addr, app.HTTPHandler(baseURL), logger); err != nil {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 3000, "Port to listen on (overrides MCP_SERVER_PORT)")
}
