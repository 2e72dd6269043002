package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends selectable with MRZ_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	LogLevel    string
	Store       string
	DatabaseURL string
	Redis       RedisConfig
	// ResultTTL bounds how long the Redis store keeps parsed documents.
	ResultTTL time.Duration
	// BatchConcurrency bounds parallel parsing in POST /mrz/parse/batch.
	BatchConcurrency int
}

// RedisConfig configures the shared Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultResultTTL keeps parsed documents for a day.
var DefaultResultTTL = 24 * time.Hour

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:             getenv("MRZ_GATEWAY_ADDR", ":8080"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		Store:            getenv("MRZ_STORE", StoreMemory),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		ResultTTL:        DefaultResultTTL,
		BatchConcurrency: 8,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}

	if raw := os.Getenv("MRZ_RESULT_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Server{}, fmt.Errorf("parse MRZ_RESULT_TTL: %w", err)
		}
		cfg.ResultTTL = ttl
	}
	if raw := os.Getenv("MRZ_BATCH_CONCURRENCY"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Server{}, fmt.Errorf("MRZ_BATCH_CONCURRENCY must be a positive integer, got %q", raw)
		}
		cfg.BatchConcurrency = n
	}

	switch cfg.Store {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Server{}, fmt.Errorf("DATABASE_URL is required when MRZ_STORE=%s", StorePostgres)
		}
	case StoreRedis:
		if cfg.Redis.URL == "" {
			return Server{}, fmt.Errorf("REDIS_URL is required when MRZ_STORE=%s", StoreRedis)
		}
	default:
		return Server{}, fmt.Errorf("unknown MRZ_STORE %q", cfg.Store)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
