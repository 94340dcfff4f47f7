package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host string
	Port string

	DatabaseURL     string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration // 0 = no per-query deadline
	DBLogLevel      string

	AutoMigrate  bool
	SeedDemoData bool

	JWTSecret   string // empty disables auth on write routes
	CORSOrigins string
	LogFile     string
}

// Load reads the process environment. Call godotenv.Load before it if a .env file should be honored.
func Load() *Config {
	cfg := &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 30),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		QueryTimeout:    getEnvDuration("DB_QUERY_TIMEOUT", 0),
		DBLogLevel:      strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		AutoMigrate:     getEnvBool("AUTO_MIGRATE", true),
		SeedDemoData:    getEnvBool("SEED_DEMO_DATA", false),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "*"),
		LogFile:         getEnv("LOG_FILE", ""),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "tortilleria"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_SSLMODE", "disable"),
			getEnv("DB_TIMEZONE", "UTC"),
		)
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		log.Printf("[WARN] invalid PORT value %q, defaulting to 8080", cfg.Port)
		cfg.Port = "8080"
	}
	if cfg.MaxIdleConns > cfg.MaxOpenConns {
		cfg.MaxIdleConns = cfg.MaxOpenConns
	}

	return cfg
}

// Addr is the listen address for fiber.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// AuthEnabled reports whether write routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] invalid %s value %q, defaulting to %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("[WARN] invalid %s value %q, defaulting to %s", key, v, def)
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[WARN] invalid %s value %q, defaulting to %t", key, v, def)
		return def
	}
	return b
}
