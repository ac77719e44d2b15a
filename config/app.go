package config

import "time"

type App struct {
	Port                 string        `env:"APP_PORT" default:"8080"`
	DatabaseURL          string        `env:"DATABASE_URL,required"`
	JWTSecret            string        `env:"JWT_SECRET,required"`
	Env                  string        `env:"APP_ENV" default:"dev"`
	SnapshotLimit        int           `env:"SNAPSHOT_LIMIT" default:"200"`
	OverdueSweepInterval time.Duration `env:"OVERDUE_SWEEP_INTERVAL" default:"1h"`
	NotifyWebhookURL     string        `env:"NOTIFY_WEBHOOK_URL"`
	NotifyWebhookSecret  string        `env:"NOTIFY_WEBHOOK_SECRET"`
}
