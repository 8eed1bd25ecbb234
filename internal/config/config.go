// Package config loads the asset tooling configuration from defaults, an
// optional YAML file and PHANTOM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	img "github.com/phantom-wg/phantom-www/internal/image"
	"github.com/phantom-wg/phantom-www/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	InputDir   string         `yaml:"input_dir"`
	OutputDir  string         `yaml:"output_dir"`
	ThemesFile string         `yaml:"themes_file"`
	Icons      FormatsConfig  `yaml:"icons"`
	Logos      FormatsConfig  `yaml:"logos"`
	Raster     RasterConfig   `yaml:"raster"`
	Watch      WatchConfig    `yaml:"watch"`
	Logging    logging.Config `yaml:"logging"`
	Install    InstallConfig  `yaml:"install"`
}

// FormatsConfig lists the per-size output formats of one pack.
type FormatsConfig struct {
	Formats []img.Format `yaml:"formats"`
}

// RasterConfig tunes rendering.
type RasterConfig struct {
	Supersample int `yaml:"supersample"`
}

// WatchConfig holds dev-loop settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// InstallConfig holds the install-script responder settings.
type InstallConfig struct {
	Addr              string `yaml:"addr"`
	ScriptPath        string `yaml:"script_path"`
	IPHeader          string `yaml:"ip_header"`
	MaxConns          int    `yaml:"max_conns"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// Default returns a Config with the stock layout and formats.
func Default() *Config {
	return &Config{
		InputDir:  "./masters",
		OutputDir: "./output",
		Icons:     FormatsConfig{Formats: append([]img.Format(nil), img.RasterFormats...)},
		Logos:     FormatsConfig{Formats: append([]img.Format(nil), img.RasterFormats...)},
		Raster:    RasterConfig{Supersample: 2},
		Watch:     WatchConfig{Debounce: 500 * time.Millisecond},
		Logging:   logging.DefaultConfig(),
		Install: InstallConfig{
			Addr:              ":8787",
			IPHeader:          "CF-Connecting-IP",
			MaxConns:          256,
			RequestsPerMinute: 60,
		},
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. An empty path falls back to PHANTOM_CONFIG_PATH.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("PHANTOM_CONFIG_PATH")
	}
	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() error {
	strs := map[string]*string{
		"PHANTOM_INPUT_DIR":      &c.InputDir,
		"PHANTOM_OUTPUT_DIR":     &c.OutputDir,
		"PHANTOM_THEMES_FILE":    &c.ThemesFile,
		"PHANTOM_LOG_LEVEL":      &c.Logging.Level,
		"PHANTOM_LOG_FORMAT":     &c.Logging.Format,
		"PHANTOM_LOG_FILE":       &c.Logging.FilePath,
		"PHANTOM_INSTALL_ADDR":   &c.Install.Addr,
		"PHANTOM_INSTALL_SCRIPT": &c.Install.ScriptPath,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("PHANTOM_SUPERSAMPLE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PHANTOM_SUPERSAMPLE: %w", err)
		}
		c.Raster.Supersample = n
	}
	return nil
}

func (c *Config) validate() error {
	if c.InputDir == "" {
		return errors.New("input_dir is required")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if err := validateFormats("icons", c.Icons.Formats); err != nil {
		return err
	}
	if err := validateFormats("logos", c.Logos.Formats); err != nil {
		return err
	}
	if c.Raster.Supersample < 1 || c.Raster.Supersample > 4 {
		return fmt.Errorf("raster.supersample must be within 1..4, got %d", c.Raster.Supersample)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	if c.Install.MaxConns < 1 {
		return fmt.Errorf("install.max_conns must be positive, got %d", c.Install.MaxConns)
	}
	if c.Install.RequestsPerMinute < 0 {
		return fmt.Errorf("install.requests_per_minute must not be negative, got %d", c.Install.RequestsPerMinute)
	}
	return nil
}

// validateFormats rejects empty, duplicate and non per-size formats. Unknown
// names never reach here: they fail in Format.UnmarshalText.
func validateFormats(section string, formats []img.Format) error {
	if len(formats) == 0 {
		return fmt.Errorf("%s.formats must not be empty", section)
	}
	seen := make(map[img.Format]bool, len(formats))
	for _, f := range formats {
		if !f.IsRaster() {
			return fmt.Errorf("%s.formats: %w: %s", section, img.ErrUnsupportedFormat, f)
		}
		if seen[f] {
			return fmt.Errorf("%s.formats: %s listed twice", section, f)
		}
		seen[f] = true
	}
	return nil
}
