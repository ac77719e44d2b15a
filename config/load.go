package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Load() App {
	// local .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("config: .env not loaded", "err", err)
	}

	cfg := App{
		Port:                 getenv("APP_PORT", "8080"),
		DatabaseURL:          must("DATABASE_URL"),
		JWTSecret:            getenv("JWT_SECRET", "local_dev_secret"),
		Env:                  getenv("APP_ENV", "dev"),
		SnapshotLimit:        getint("SNAPSHOT_LIMIT", 200),
		OverdueSweepInterval: getdur("OVERDUE_SWEEP_INTERVAL", time.Hour),
		NotifyWebhookURL:     os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifyWebhookSecret:  os.Getenv("NOTIFY_WEBHOOK_SECRET"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config: bad int, using default", "key", k, "value", v)
		return def
	}
	return n
}

func getdur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("config: bad duration, using default", "key", k, "value", v)
		return def
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
