package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseDSN    string   `yaml:"db_dsn"`
	AdminDatabase  string   `yaml:"db_admin_database"`
	MaxConns       int32    `yaml:"db_max_conns"`
	Port           string   `yaml:"port"`
	EnableMetrics  bool     `yaml:"enable_metrics"`
	CORSOrigins    []string `yaml:"cors_allowed_origins"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
	ExportLocale   string   `yaml:"export_locale"`
	ExportTimezone string   `yaml:"export_timezone"`
}

func defaults() *Config {
	return &Config{
		AdminDatabase:  "postgres",
		MaxConns:       10,
		Port:           "3000",
		CORSOrigins:    []string{"*"},
		LogLevel:       "info",
		LogFormat:      "json",
		ExportLocale:   "pt-BR",
		ExportTimezone: "America/Sao_Paulo",
	}
}

// Load reads .env (if present), then the YAML file named by INVENTARIO_CONFIG
// (if set), then lets environment variables override both.
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	config := defaults()

	if path := os.Getenv("INVENTARIO_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	config.DatabaseDSN = getEnv("DB_DSN", config.DatabaseDSN)
	config.AdminDatabase = getEnv("DB_ADMIN_DATABASE", config.AdminDatabase)
	config.Port = getEnv("PORT", config.Port)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)
	config.LogFormat = getEnv("LOG_FORMAT", config.LogFormat)
	config.ExportLocale = getEnv("EXPORT_LOCALE", config.ExportLocale)
	config.ExportTimezone = getEnv("EXPORT_TIMEZONE", config.ExportTimezone)

	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("DB_MAX_CONNS: %w", err)
		}
		config.MaxConns = int32(n)
	}
	if v := os.Getenv("ENABLE_METRICS"); v != "" {
		config.EnableMetrics = v == "true"
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		config.CORSOrigins = splitList(v)
	}

	return config, nil
}

// LoadAndValidate loads the configuration and rejects unusable values
func LoadAndValidate() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.DatabaseDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.MaxConns)
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves ExportTimezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ExportTimezone)
	if err != nil {
		return nil, fmt.Errorf("EXPORT_TIMEZONE: %w", err)
	}
	return loc, nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
