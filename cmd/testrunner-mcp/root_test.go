package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	testrunner "github.com/applitest/testrunner-mcp"
	"github.com/applitest/testrunner-mcp/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().String("engine", "", "")
	cmd.Flags().Int("port", 3000, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 4000\nengine:\n  kind: memory\nlog:\n  level: debug\n"), 0o644))
	t.Setenv(config.EnvLogLevel, "warn")

	cfg, err := loadConfig(newFlagCommand(t, "--config", path, "--port", "4242"))
	require.NoError(t, err)

	assert.Equal(t, 4242, cfg.Server.Port, "flag beats file")
	assert.Equal(t, "warn", cfg.Log.Level, "env beats file")
	assert.Equal(t, config.EngineMemory, cfg.Engine.Kind, "file beats default")
}

func TestLoadConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(config.EnvEngine, "playwright")

	cfg, err := loadConfig(newFlagCommand(t, "--config", writeEmpty(t), "--engine", "memory"))
	require.NoError(t, err)
	assert.Equal(t, config.EngineMemory, cfg.Engine.Kind)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	_, err := loadConfig(newFlagCommand(t, "--config", writeEmpty(t), "--engine", "selenium"))
	assert.Error(t, err)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(newFlagCommand(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func writeEmpty(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "testrunner-mcp version "+testrunner.Version, strings.TrimSpace(out.String()))
}
