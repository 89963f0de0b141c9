// Package config loads the wishsheet configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WISHSHEET_"

// Config represents the complete application configuration.
type Config struct {
	SheetID     string        `yaml:"sheet_id"`
	BaseURL     string        `yaml:"base_url"`
	Workbook    string        `yaml:"workbook"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
	LogLevel    string        `yaml:"log_level"`

	Sheets    []SheetConfig     `yaml:"sheets"`
	UIAliases map[string]string `yaml:"ui_aliases"`
	Assets    AssetConfig       `yaml:"assets"`
}

// SheetConfig names a sheet and how to decode it.
type SheetConfig struct {
	Name string `yaml:"name"`
	Mode string `yaml:"mode"`
}

// AssetConfig holds the static asset locations.
type AssetConfig struct {
	ImageList    string `yaml:"image_list"`
	Placeholders string `yaml:"placeholders"`
	BasePath     string `yaml:"base_path"`
	ImagesDir    string `yaml:"images_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SheetID:     "11aiY7cf_RqnCpWvdxxNBg6fzpBz7RWRPgJgI8o9u7ds",
		BaseURL:     "https://docs.google.com/spreadsheets/d/",
		Timeout:     10 * time.Second,
		Concurrency: 4,
		LogLevel:    "info",
		Sheets: []SheetConfig{
			{Name: "UI", Mode: "mapping"},
			{Name: "Oracle", Mode: "mapping"},
			{Name: "MaxFrei", Mode: "mapping"},
		},
		UIAliases: map[string]string{
			"A": "wishHeader",
			"B": "wishMainText",
			"C": "oraculActionButtonText",
			"D": "maxFreiActionButtonText",
			"E": "generatedWishTitle",
		},
		Assets: AssetConfig{
			ImageList:    "src/assets/image-data.json",
			Placeholders: "src/assets/blurhash.json",
			BasePath:     "assets/images/",
			ImagesDir:    "src/assets/images",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if it
// exists), then a .env file, then WISHSHEET_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.SheetID = getEnvOrDefault("SHEET_ID", cfg.SheetID)
	cfg.BaseURL = getEnvOrDefault("BASE_URL", cfg.BaseURL)
	cfg.Workbook = getEnvOrDefault("WORKBOOK", cfg.Workbook)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.Assets.ImageList = getEnvOrDefault("IMAGE_LIST", cfg.Assets.ImageList)
	cfg.Assets.Placeholders = getEnvOrDefault("PLACEHOLDERS", cfg.Assets.Placeholders)
	cfg.Assets.ImagesDir = getEnvOrDefault("IMAGES_DIR", cfg.Assets.ImagesDir)

	if v := os.Getenv(EnvPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvPrefix + "CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sCONCURRENCY: %w", EnvPrefix, err)
		}
		cfg.Concurrency = n
	}
	if v := os.Getenv(EnvPrefix + "SHEETS"); v != "" {
		cfg.Sheets = parseSheets(v)
	}
	return nil
}

// parseSheets reads "UI,Oracle,MaxFrei:flat" into sheet configs.
func parseSheets(v string) []SheetConfig {
	var sheets []SheetConfig
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, mode, _ := strings.Cut(part, ":")
		if mode == "" {
			mode = "mapping"
		}
		sheets = append(sheets, SheetConfig{Name: name, Mode: mode})
	}
	return sheets
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	var errs []error
	if c.SheetID == "" && c.Workbook == "" {
		errs = append(errs, errors.New("sheet_id or workbook is required"))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	if c.Concurrency < 0 {
		errs = append(errs, errors.New("concurrency must not be negative"))
	}
	for _, s := range c.Sheets {
		if s.Name == "" {
			errs = append(errs, errors.New("sheet name is required"))
		}
		if s.Mode != "" && s.Mode != "mapping" && s.Mode != "flat" {
			errs = append(errs, fmt.Errorf("sheet %q: invalid mode %q (must be mapping or flat)", s.Name, s.Mode))
		}
	}
	return errors.Join(errs...)
}

// SheetNames returns the configured sheet names in order.
func (c *Config) SheetNames() []string {
	names := make([]string, len(c.Sheets))
	for i, s := range c.Sheets {
		names[i] = s.Name
	}
	return names
}

// SheetModes returns the configured decode mode per sheet.
func (c *Config) SheetModes() map[string]string {
	modes := make(map[string]string, len(c.Sheets))
	for _, s := range c.Sheets {
		modes[s.Name] = s.Mode
	}
	return modes
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return defaultValue
}
