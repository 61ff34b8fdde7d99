package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr     string
	LogLevel string

	// geometry source: "csv" or "postgres"
	Source        string
	CSVPath       string
	PostgresDSN   string
	PostgresTable string

	// memo backend: "memory" or "redis"
	CacheBackend   string
	RedisAddr      string
	CacheTTL       time.Duration
	CacheSize      int
	CacheOpTimeout time.Duration
}

func FromEnv() Config {
	return Config{
		Addr:     getenv("ADDR", ":8090"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		Source:        strings.ToLower(getenv("SOURCE", "csv")),
		CSVPath:       getenv("CSV_PATH", "data/h3_polygon_spherical.csv"),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		PostgresTable: getenv("POSTGRES_TABLE", "h3_polygon_spherical"),

		CacheBackend:   strings.ToLower(getenv("CACHE_BACKEND", "memory")),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:       getduration("CACHE_TTL", 48*time.Hour),
		CacheSize:      getint("CACHE_SIZE", 256),
		CacheOpTimeout: getduration("CACHE_OP_TIMEOUT", 250*time.Millisecond),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
