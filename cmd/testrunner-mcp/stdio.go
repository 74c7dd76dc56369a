package main

import (
	"context"
	"log"
	"os"

	testrunner "github.com/applitest/testrunner-mcp"
	"github.com/applitest/testrunner-mcp/internal/cli"
	"github.com/spf13/cobra"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP over Standard Input/Output",
	Long: `Serves MCP over Standard Input/Output. Ideal for local process integration with
desktop agents. Logs go to stderr.`,
	RunE: runStdio,
}

func runStdio(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	// Ensure logs don't corrupt JSON-RPC on Stdout
	log.SetOutput(os.Stderr)

	app, err := cli.NewApp(cfg, testrunner.Version, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			logger.Error("Shutdown failed", "err", err)
		}
	}()

	return app.Server.ServeStdio()
}

func init() {
	rootCmd.AddCommand(stdioCmd)
}
