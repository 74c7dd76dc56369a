package main

import (
	"fmt"

	testrunner "github.com/applitest/testrunner-mcp"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of testrunner-mcp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "testrunner-mcp version %s\n", testrunner.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
