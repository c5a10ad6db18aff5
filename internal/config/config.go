package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env  string
	Port int

	DBURL            string
	DBMinConns       int
	DBMaxConns       int
	DBAcquireTimeout time.Duration

	// SessionSecret signs the one-shot flash cookie.
	SessionSecret string

	// Optional first user seeded at startup. Skipped when empty.
	SeedName     string
	SeedEmail    string
	SeedPassword string

	// OTLP trace collector endpoint. Tracing is off when empty.
	OTLPEndpoint string
}

func Load() Config {
	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		DBURL:            buildDBURL(),
		DBMinConns:       getEnvInt("DB_MIN_CONNS", 1),
		DBMaxConns:       getEnvInt("DB_MAX_CONNS", 5),
		DBAcquireTimeout: time.Duration(getEnvInt("DB_ACQUIRE_TIMEOUT_SECONDS", 10)) * time.Second,

		SessionSecret: getEnv("SESSION_SECRET", "dev-only-insecure-secret"),

		SeedName:     getEnv("SEED_NAME", ""),
		SeedEmail:    getEnv("SEED_EMAIL", ""),
		SeedPassword: getEnv("SEED_PASSWORD", ""),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// buildDBURL prefers a full DATABASE_URL and otherwise assembles one from
// the individual DB_* parts, with defaults usable against a local postgres.
func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASSWORD", "admin")
	name := getEnv("DB_NAME", "useradmin")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}
