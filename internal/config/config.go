package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the auditor settings. Values are resolved from defaults, an
// optional YAML file and AUDIT_* environment variables, in that order.
type Config struct {
	InputDir    string    `yaml:"input_dir"`
	Pattern     string    `yaml:"pattern"`
	Output      string    `yaml:"output"`
	CatalogPath string    `yaml:"catalog"`
	Workers     int       `yaml:"workers"`
	LogLevel    string    `yaml:"log_level"`
	Inventory   Inventory `yaml:"inventory"`
}

// Inventory configures the asset inventory sources. Both are optional.
type Inventory struct {
	URL      string        `yaml:"url"`
	Token    string        `yaml:"token"`
	Timeout  time.Duration `yaml:"timeout"`
	PageSize int           `yaml:"page_size"`
	File     string        `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InputDir: ".",
		Pattern:  "*.xml",
		Output:   "report.csv",
		Workers:  1,
		LogLevel: "info",
		Inventory: Inventory{
			Timeout:  30 * time.Second,
			PageSize: 500,
		},
	}
}

// Load builds the configuration. An empty path skips the file. The result is
// not validated; callers apply their overrides and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InventoryEnabled reports whether any inventory source is configured.
func (c *Config) InventoryEnabled() bool {
	return c.Inventory.URL != "" || c.Inventory.File != ""
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Output == "" {
		return errors.New("output path is empty")
	}
	if c.Inventory.PageSize < 0 {
		return fmt.Errorf("inventory page size must not be negative, got %d", c.Inventory.PageSize)
	}
	if c.Inventory.Timeout < 0 {
		return fmt.Errorf("inventory timeout must not be negative, got %s", c.Inventory.Timeout)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.InputDir = getEnv("AUDIT_INPUT_DIR", c.InputDir)
	c.Pattern = getEnv("AUDIT_PATTERN", c.Pattern)
	c.Output = getEnv("AUDIT_OUTPUT", c.Output)
	c.CatalogPath = getEnv("AUDIT_CATALOG", c.CatalogPath)
	c.LogLevel = getEnv("AUDIT_LOG_LEVEL", c.LogLevel)
	c.Inventory.URL = getEnv("AUDIT_INVENTORY_URL", c.Inventory.URL)
	c.Inventory.Token = getEnv("AUDIT_INVENTORY_TOKEN", c.Inventory.Token)
	c.Inventory.File = getEnv("AUDIT_INVENTORY_FILE", c.Inventory.File)

	var err error
	c.Workers, err = getEnvAsInt("AUDIT_WORKERS", c.Workers)
	if err != nil {
		return err
	}

	c.Inventory.PageSize, err = getEnvAsInt("AUDIT_INVENTORY_PAGE_SIZE", c.Inventory.PageSize)
	if err != nil {
		return err
	}

	c.Inventory.Timeout, err = getEnvAsDuration("AUDIT_INVENTORY_TIMEOUT", c.Inventory.Timeout)
	if err != nil {
		return err
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected a duration, got '%s'", key, valueStr)
	}

	return value, nil
}
