package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL   string
	HTTPAddr      string
	LogLevel      string
	Env           string // dev|prod
	SentryDSN     string
	// Порог зачёта в процентах, граница включительно. Контрактное значение —
	// 60; переопределение через PASS_THRESHOLD меняет поведение классификатора
	// и предназначено только для стендов.
	PassThreshold float64
}

func Load() (*Config, error) {
	threshold, err := parseThreshold(os.Getenv("PASS_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("PASS_THRESHOLD: %w", err)
	}

	cfg := &Config{
		DatabaseURL:   mustEnv("DATABASE_URL"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		Env:           getenv("ENV", "dev"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		PassThreshold: threshold,
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseThreshold(s string) (float64, error) {
	if s == "" {
		return 60, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad value %q: %w", s, err)
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("value %v out of range 0..100", n)
	}
	return n, nil
}
