package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	AppName         string
	AppVersion      string
	GinMode         string
	Port            string
	LogLevel        string
	StoreDriver     string
	SQLiteDSN       string
	DBAttempts      int
	ShutdownTimeout time.Duration
	TrustedProxies  []string
}

// Load reads configuration from the environment. In debug mode a .env file in
// the working directory is loaded first when it exists.
func Load() (*Config, error) {
	if getenv("GIN_MODE", "debug") == "debug" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("could not load .env")
		}
	}

	cfg := &Config{
		AppName:         getenv("APP_NAME", "Library API"),
		AppVersion:      getenv("APP_VERSION", "1.0.0"),
		GinMode:         getenv("GIN_MODE", "debug"),
		Port:            getenv("PORT", "3000"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		StoreDriver:     strings.ToLower(getenv("STORE_DRIVER", StoreMemory)),
		SQLiteDSN:       getenv("SQLITE_DSN", "file:library?mode=memory&cache=shared"),
		DBAttempts:      getenvInt("DB_CONNECT_ATTEMPTS", 5),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TrustedProxies:  splitList(getenv("TRUSTED_PROXIES", "127.0.0.1,::1")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want %q or %q)", c.StoreDriver, StoreMemory, StoreSQLite)
	}

	if c.DBAttempts < 1 {
		c.DBAttempts = 1
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
