package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/applitest/testrunner-mcp/internal/config"
	"github.com/applitest/testrunner-mcp/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "testrunner-mcp",
	Short: "MCP server for driving a browser test runner step by step",
	Long: `testrunner-mcp exposes a test runner as Model Context Protocol tools.
AI agents open a session, inspect the page tree, perform steps and close the session.

Without a subcommand the server speaks MCP over stdio.`,
	SilenceUsage: true,
	RunE:         runStdio,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default "+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("engine", "", "Automation engine: playwright or memory")
}

// loadConfig resolves defaults < file < environment < flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	required := path != ""
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("engine") {
		cfg.Engine.Kind, _ = cmd.Flags().GetString("engine")
	}
	if cmd.Flags().Lookup("port") != nil && cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(level, cfg.Log.Format), nil
}
