package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/planforge/planforge/internal/core/planner"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Planner  PlannerConfig  `mapstructure:"planner"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds plan archive configuration.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PlannerConfig holds planner capabilities and stage type overrides.
type PlannerConfig struct {
	// ValidationPipelines enables compilation of requests that reference
	// post-resize validation pipelines. Leave false unless a pipeline
	// orchestrator consumes the emitted run-pipeline stages.
	ValidationPipelines bool `mapstructure:"validation_pipelines"`

	// Stages overrides the stage type identifiers emitted into plans, for
	// drivers whose stage vocabulary differs from the default. Unset entries
	// keep their defaults.
	Stages StagesConfig `mapstructure:"stages"`
}

// StagesConfig mirrors planner.StageRegistry for configuration files.
type StagesConfig struct {
	DetermineTargetGroup string `mapstructure:"determine_target_group"`
	PinServerGroup       string `mapstructure:"pin_server_group"`
	ResizeServerGroup    string `mapstructure:"resize_server_group"`
	DisableServerGroup   string `mapstructure:"disable_server_group"`
	ScaleDownCluster     string `mapstructure:"scale_down_cluster"`
	Wait                 string `mapstructure:"wait"`
	RunPipeline          string `mapstructure:"run_pipeline"`
}

// Registry converts the configured overrides into a stage registry.
func (c StagesConfig) Registry() planner.StageRegistry {
	return planner.StageRegistry{
		DetermineTargetGroup: c.DetermineTargetGroup,
		PinServerGroup:       c.PinServerGroup,
		ResizeServerGroup:    c.ResizeServerGroup,
		DisableServerGroup:   c.DisableServerGroup,
		ScaleDownCluster:     c.ScaleDownCluster,
		Wait:                 c.Wait,
		RunPipeline:          c.RunPipeline,
	}.WithDefaults()
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("database.dsn", "./data/planforge.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("planner.validation_pipelines", false)

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("PLANFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
