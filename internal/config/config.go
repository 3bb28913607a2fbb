package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const defaultConfigFile = "taskboard.toml"

// Config keeps runtime settings for the board.
type Config struct {
	DatabaseURL    string
	ReportInterval time.Duration
	LogLevel       string
	LogFormat      string
}

// fileConfig mirrors the optional TOML file.
type fileConfig struct {
	DatabaseURL    string `toml:"database_url"`
	ReportInterval string `toml:"report_interval"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
}

// Load reads configuration from the optional TOML file, then environment
// variables, with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:    "taskboard.db",
		ReportInterval: 5 * time.Hour,
		LogLevel:       "info",
		LogFormat:      "text",
	}

	path := strings.TrimSpace(os.Getenv("TASKBOARD_CONFIG"))
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if err := loadFile(&cfg, path, explicit); err != nil {
		return cfg, err
	}

	loadEnv(&cfg)

	if cfg.ReportInterval <= 0 {
		return cfg, fmt.Errorf("report interval must be positive")
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("load config file %s: %w", path, err)
	}

	if v := strings.TrimSpace(fc.DatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(fc.ReportInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config file %s: report_interval: %w", path, err)
		}
		cfg.ReportInterval = d
	}
	if v := strings.TrimSpace(fc.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(fc.LogFormat); v != "" {
		cfg.LogFormat = v
	}
	return nil
}

func loadEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}
	if d := parseInterval(strings.TrimSpace(os.Getenv("REPORT_INTERVAL_HOURS"))); d > 0 {
		cfg.ReportInterval = d
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.LogFormat = v
	}
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
