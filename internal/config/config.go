package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Isolation modes for running calculations.
const (
	IsolationProcess = "process"
	IsolationInline  = "inline"
)

// TelemetryConfig controls OTLP export of traces, metrics and logs.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// ServerConfig configures `calc serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Config wraps the entire configuration for the calculator.
type Config struct {
	Environment   string          `mapstructure:"environment" yaml:"environment"`       // development, testing or production
	LogLevel      string          `mapstructure:"log_level" yaml:"log_level"`           // Overrides the level implied by Environment
	PluginDir     string          `mapstructure:"plugin_dir" yaml:"plugin_dir"`         // Directory scanned for plugin descriptors
	Isolation     string          `mapstructure:"isolation" yaml:"isolation"`           // process or inline
	WorkerTimeout time.Duration   `mapstructure:"worker_timeout" yaml:"worker_timeout"` // Deadline for a process worker
	Telemetry     TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
	Server        ServerConfig    `mapstructure:"server" yaml:"server"`
}

// IsDevelopment reports whether the calculator runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func (c *Config) Validate() error {
	switch c.Isolation {
	case IsolationProcess, IsolationInline:
	default:
		return fmt.Errorf("invalid isolation %q: want %q or %q", c.Isolation, IsolationProcess, IsolationInline)
	}
	if c.WorkerTimeout <= 0 {
		return fmt.Errorf("invalid worker timeout %s: must be positive", c.WorkerTimeout)
	}
	return nil
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"environment":            "ENVIRONMENT",
	"log_level":              "LOG_LEVEL",
	"plugin_dir":             "CALC_PLUGIN_DIR",
	"isolation":              "CALC_ISOLATION",
	"worker_timeout":         "CALC_WORKER_TIMEOUT",
	"telemetry.enabled":      "CALC_TELEMETRY_ENABLED",
	"telemetry.service_name": "OTEL_SERVICE_NAME",
	"server.addr":            "CALC_SERVER_ADDR",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "production")
	v.SetDefault("log_level", "")
	v.SetDefault("plugin_dir", "plugins")
	v.SetDefault("isolation", IsolationProcess)
	v.SetDefault("worker_timeout", 10*time.Second)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "calc")
	v.SetDefault("server.addr", ":8080")
}

func bindEnvs(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

// Load reads configuration from the optional YAML file at filePath and the
// environment. Environment variables win over the file; a missing file is
// not an error.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Isolation = strings.ToLower(cfg.Isolation)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads the configuration from environment variables only.
func LoadEnv() (*Config, error) {
	return Load("")
}
