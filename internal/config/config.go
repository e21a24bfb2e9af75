package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// MinPort is the lowest port the server will bind; privileged ports are refused.
	MinPort = 1024
	MaxPort = 65535
)

// Config holds all process-wide settings. It is built once at startup and
// passed by reference; nothing mutates it afterwards.
type Config struct {
	Port         int
	DataLocation string
	DBDriver     string
	DBPath       string
	DatabaseURL  string
	TrustProxy   bool
}

func Default() Config {
	return Config{
		Port:         3000,
		DataLocation: "./data",
		DBDriver:     "sqlite3",
		DBPath:       "datadrop.db",
		TrustProxy:   false,
	}
}

// Load reads configuration from the environment. An unparsable or
// out-of-range PORT_NUMBER is a startup error, not a silent fallback.
func Load() (*Config, error) {
	cfg := Default()

	if port := os.Getenv("PORT_NUMBER"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT_NUMBER %q: %w", port, err)
		}
		if n < MinPort || n > MaxPort {
			return nil, fmt.Errorf("PORT_NUMBER %d out of range [%d, %d]", n, MinPort, MaxPort)
		}
		cfg.Port = n
	}

	if dir := os.Getenv("DATA_LOCATION"); dir != "" {
		cfg.DataLocation = dir
	}

	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		if driver != "sqlite3" && driver != "postgres" {
			return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
		}
		cfg.DBDriver = driver
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}

	if os.Getenv("TRUST_PROXY") == "true" {
		cfg.TrustProxy = true
	}

	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DB_DRIVER=postgres requires DATABASE_URL")
	}

	return &cfg, nil
}

// ListenAddr renders the address for http.Server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
