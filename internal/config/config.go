// Package config holds all runtime configuration for the hub, loaded from
// environment variables with defaults suitable for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Addr is the listen address of the HTTP/WebSocket endpoint.
	Addr string
	// HistoryCap is the maximum number of retained messages before
	// oldest-first eviction.
	HistoryCap int
	// BlobDir is the root directory of the file blob store.
	BlobDir string
	// DeliveryTimeout bounds each push to a session's callback channel.
	DeliveryTimeout time.Duration
	// FanoutWorkers is the size of the delivery worker pool.
	FanoutWorkers int
	// SendBuffer is the per-session outbound frame buffer.
	SendBuffer int
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		Addr:            envString("ADDR", ":8080"),
		HistoryCap:      envInt("HISTORY_CAP", 500),
		BlobDir:         envString("BLOB_DIR", "./chathub-files"),
		DeliveryTimeout: envDuration("DELIVERY_TIMEOUT", 5*time.Second),
		FanoutWorkers:   envInt("FANOUT_WORKERS", 8),
		SendBuffer:      envInt("SEND_BUFFER", 256),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid value for %s: %q", key, v)
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid value for %s: %q", key, v)
	}
	return d
}
