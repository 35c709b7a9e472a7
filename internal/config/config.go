package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	Port           int
	DBURL          string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	TracingEnabled bool
	OTLPEndpoint   string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return Config{
		Env:            getEnv("APP_ENV", "dev"),
		Port:           getEnvInt("PORT", 8080),
		DBURL:          buildDBURL(),
		JWTSecret:      getEnv("JWT_SECRET", "dev-only-secret"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		AllowedOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		TracingEnabled: getEnv("OTEL_ENABLED", "") == "true",
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "taskhub")
	pass := getEnv("DB_PASSWORD", "taskhub")
	name := getEnv("DB_NAME", "taskhub")
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
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			return fallback
		}

		return d
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
