// Package config builds runtime configuration from environment variables so
// main stays lean. Every subsystem gets its own struct; empty values mean
// the subsystem is disabled and the gateway falls back to in-memory stand-ins.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	RequestTimeout time.Duration
}

// Postgres configures the submission record store.
type Postgres struct {
	// URL is a lib/pq connection string. Empty disables Postgres; the
	// gateway runs on the in-memory store instead.
	URL string
}

// RedisConfig configures the saved-progress store backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BlobConfig configures attachment object storage.
type BlobConfig struct {
	// GCSBucket names the Cloud Storage bucket. Empty disables GCS.
	GCSBucket string
}

// EmailConfig configures the transactional-email notifier.
type EmailConfig struct {
	BaseURL    string
	APIKey     string
	From       string
	Recipients []string
}

// Enabled reports whether enough is configured to send email.
func (e EmailConfig) Enabled() bool {
	return e.APIKey != "" && len(e.Recipients) > 0
}

// KafkaConfig configures the submission event publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether event publication is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Config is the full gateway configuration.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    RedisConfig
	Blob     BlobConfig
	Email    EmailConfig
	Kafka    KafkaConfig
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:           get("ORIGINFORM_ADDR", ":8080"),
			RequestTimeout: duration("ORIGINFORM_REQUEST_TIMEOUT", 30*time.Second),
		},
		Postgres: Postgres{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Blob: BlobConfig{
			GCSBucket: os.Getenv("GCS_BUCKET"),
		},
		Email: EmailConfig{
			BaseURL:    get("EMAIL_API_BASE_URL", "https://api.resend.com"),
			APIKey:     os.Getenv("EMAIL_API_KEY"),
			From:       get("EMAIL_FROM", "noreply@customs.gov.ng"),
			Recipients: list("EMAIL_RECIPIENTS"),
		},
		Kafka: KafkaConfig{
			Brokers: list("KAFKA_BROKERS"),
			Topic:   get("KAFKA_TOPIC", "originform.submissions"),
		},
	}
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func list(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
