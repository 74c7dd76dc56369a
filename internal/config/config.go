// Package config loads the server configuration from defaults, an optional YAML (or JSON) file
// and the environment. Command-line flags are applied last by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/applitest/testrunner-mcp/internal/logging"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. Its absence is not an error.
const DefaultPath = "testrunner.yaml"

// Engine kinds.
const (
	EnginePlaywright = "playwright"
	EngineMemory     = "memory"
)

// Environment variables.
const (
	EnvPort     = "MCP_SERVER_PORT"
	EnvLogLevel = "TESTRUNNER_LOG_LEVEL"
	EnvEngine   = "TESTRUNNER_ENGINE"
)

type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `yaml:"port"`
}

type EngineConfig struct {
	Kind     string        `yaml:"kind"`
	Headless bool          `yaml:"headless"`
	Timeout  time.Duration `yaml:"timeout"`
	// Install downloads the Playwright driver and browsers on first start.
	Install bool `yaml:"install"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TelemetryConfig struct {
	Tracing bool `yaml:"tracing"`
}

// Config is the complete server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Engine    EngineConfig    `yaml:"engine"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 3000},
		Engine: EngineConfig{
			Kind:     EnginePlaywright,
			Headless: true,
			Timeout:  30 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults and applies the environment. A missing file is an error
// only when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path, required); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	// JSON documents are valid YAML.
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvEngine); ok && v != "" {
		c.Engine.Kind = v
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: out of range: %d", c.Server.Port))
	}
	switch c.Engine.Kind {
	case EnginePlaywright, EngineMemory:
	default:
		errs = append(errs, fmt.Errorf("engine.kind: unknown engine %q", c.Engine.Kind))
	}
	if c.Engine.Timeout < 0 {
		errs = append(errs, fmt.Errorf("engine.timeout: must not be negative"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
