package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `yaml:"service_name"`
	HTTPPort    string `yaml:"http_port"`

	StoreDriver string `yaml:"store_driver"`
	PostgresDSN string `yaml:"postgres_dsn"`
	SQLitePath  string `yaml:"sqlite_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	StatsCacheSize int   `yaml:"stats_cache_size"`
	ImportMaxBytes int64 `yaml:"import_max_bytes"`

	EnableMetrics bool `yaml:"enable_metrics"`
	EnableSwagger bool `yaml:"enable_swagger"`
}

func defaults() Config {
	return Config{
		ServiceName:    "roster",
		HTTPPort:       "8080",
		StoreDriver:    StoreMemory,
		SQLitePath:     "data/roster.db",
		LogLevel:       "info",
		LogFormat:      "json",
		StatsCacheSize: 16,
		ImportMaxBytes: 5 << 20,
		EnableMetrics:  true,
		EnableSwagger:  true,
	}
}

// Load reads defaults, then the YAML file named by ROSTER_CONFIG when set,
// then environment variables. Later sources win.
func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("ROSTER_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.ServiceName = envString("SERVICE_NAME", cfg.ServiceName)
	cfg.HTTPPort = envString("HTTP_PORT", cfg.HTTPPort)
	cfg.StoreDriver = strings.ToLower(envString("STORE_DRIVER", cfg.StoreDriver))
	cfg.PostgresDSN = envString("POSTGRES_DSN", cfg.PostgresDSN)
	cfg.SQLitePath = envString("SQLITE_PATH", cfg.SQLitePath)
	cfg.LogLevel = strings.ToLower(envString("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(envString("LOG_FORMAT", cfg.LogFormat))
	cfg.EnableMetrics = envBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableSwagger = envBool("ENABLE_SWAGGER", cfg.EnableSwagger)

	var err error
	if cfg.StatsCacheSize, err = envInt("STATS_CACHE_SIZE", cfg.StatsCacheSize); err != nil {
		return Config{}, err
	}
	maxBytes, err := envInt("IMPORT_MAX_BYTES", int(cfg.ImportMaxBytes))
	if err != nil {
		return Config{}, err
	}
	cfg.ImportMaxBytes = int64(maxBytes)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("config: POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver == StoreSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		return fmt.Errorf("config: SQLITE_PATH is required when STORE_DRIVER=sqlite")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("config: unknown LOG_FORMAT %q", c.LogFormat)
	}
	if c.ImportMaxBytes <= 0 {
		return fmt.Errorf("config: IMPORT_MAX_BYTES must be positive")
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func envString(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", name, err)
	}
	return value, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
