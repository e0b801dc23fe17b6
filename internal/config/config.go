// Package config loads domcapture settings. Tool settings (logging, output,
// browser) come from a YAML file, DOMCAPTURE_ environment variables and
// flags through viper. Capture options come from HCL profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. DOMCAPTURE_LOGGING_LEVEL.
const EnvPrefix = "DOMCAPTURE"

// Config represents the complete tool configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Capture CaptureConfig `mapstructure:"capture"`
	Browser BrowserConfig `mapstructure:"browser"`
}

// LoggingConfig controls the process logger
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error (default: info)
	Level string `mapstructure:"level"`
	// JSON switches log lines to JSON objects
	JSON bool `mapstructure:"json"`
}

// OutputConfig controls where and how surfaces are written
type OutputConfig struct {
	// Format is used when the output path has no extension (default: png)
	Format string `mapstructure:"format"`
	// Dir is prepended to relative output paths (default: current directory)
	Dir string `mapstructure:"dir"`
}

// CaptureConfig controls the orchestrator
type CaptureConfig struct {
	// Diagnostic logs capture failures before returning them (default: false)
	Diagnostic bool `mapstructure:"diagnostic"`
	// Profile is an HCL file of default capture options
	Profile string `mapstructure:"profile"`
}

// BrowserConfig controls the headless browser used by the browse command
type BrowserConfig struct {
	// ExecPath is the Chrome binary; empty searches PATH
	ExecPath     string `mapstructure:"exec_path"`
	Headless     bool   `mapstructure:"headless"`
	WindowWidth  int    `mapstructure:"window_width"`
	WindowHeight int    `mapstructure:"window_height"`
	// TimeoutSeconds bounds each browser operation, 0 = no limit
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the browser operation timeout as a duration
func (b BrowserConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: "png",
		},
		Browser: BrowserConfig{
			Headless:       true,
			WindowWidth:    1280,
			WindowHeight:   800,
			TimeoutSeconds: 60,
		},
	}
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.json", defaults.Logging.JSON)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.dir", defaults.Output.Dir)

	v.SetDefault("capture.diagnostic", defaults.Capture.Diagnostic)
	v.SetDefault("capture.profile", defaults.Capture.Profile)

	v.SetDefault("browser.exec_path", defaults.Browser.ExecPath)
	v.SetDefault("browser.headless", defaults.Browser.Headless)
	v.SetDefault("browser.window_width", defaults.Browser.WindowWidth)
	v.SetDefault("browser.window_height", defaults.Browser.WindowHeight)
	v.SetDefault("browser.timeout_seconds", defaults.Browser.TimeoutSeconds)
}

// NewViper returns a viper instance with defaults, environment binding and
// the config search path set up. An explicit path disables the search.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		return v
	}
	v.SetConfigName("domcapture")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "domcapture"))
	}
	return v
}

// Load reads the config file (if any) into a Config. A missing file in the
// search path is not an error; a missing explicit path is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}
