package main

import (
	"os"

	testrunner "github.com/applitest/testrunner-mcp"
	"github.com/applitest/testrunner-mcp/internal/presentation/tui"
	"github.com/applitest/testrunner-mcp/pkg/catalog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the tools, resources and prompts the server exposes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		version := testrunner.Version
		if cfg.Server.Version != "" {
			version = cfg.Server.Version
		}

		styled := term.IsTerminal(int(os.Stdout.Fd()))
		return tui.RenderInfo(cmd.OutOrStdout(), catalog.NewInfo(cfg.Server.Name, version), styled)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
