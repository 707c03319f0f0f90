package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	StateBackend string // memory | mysql
	MySQLDSN     string // required when STATE_BACKEND=mysql

	// Optional: run migrations at startup (dev convenience)
	RunMigrations bool

	// Remote product API
	StorefrontBaseURL    string
	StorefrontTimeout    time.Duration
	StorefrontRatePerMin int

	// Sync defaults
	DefaultSite     string
	DefaultCurrency string

	// Optional YAML site table; built-in table used when empty.
	SitesFile string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Env:           getenv("ENV", "dev"),
		Port:          getenv("PORT", "8080"),
		StateBackend:  getenv("STATE_BACKEND", "memory"),
		MySQLDSN:      getenv("DB_DSN", ""),
		RunMigrations: getenv("RUN_MIGRATIONS", "false") == "true",

		StorefrontBaseURL:    getenv("STOREFRONT_BASE_URL", "http://localhost:9090/stores/v3"),
		StorefrontTimeout:    getduration("STOREFRONT_TIMEOUT", 15*time.Second),
		StorefrontRatePerMin: getint("STOREFRONT_RATE_PER_MIN", 70),

		DefaultSite:     getenv("DEFAULT_SITE", ""),
		DefaultCurrency: getenv("DEFAULT_CURRENCY", "USD"),
		SitesFile:       getenv("SITES_FILE", ""),
	}
	return cfg
}

func getenv(key string, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
