package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is populated from environment variables (a .env file is loaded
// first in main). Only DATABASE_URL is required for the server to start;
// mail and image upload degrade to disabled when unconfigured.
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"secret_key_change_me"`
	SiteURL       string `envconfig:"SITE_URL" default:"https://forskull.uz"`

	SMTPHost string `envconfig:"SMTP_HOST"`
	SMTPPort string `envconfig:"SMTP_PORT"`
	SMTPUser string `envconfig:"SMTP_USER"`
	SMTPPass string `envconfig:"SMTP_PASS"`
	SMTPFrom string `envconfig:"SMTP_FROM"`

	ImgurClientID string `envconfig:"IMGUR_CLIENT_ID"`

	// Cron spec for the nightly counter reconciliation.
	ReconcileSpec string `envconfig:"RECONCILE_CRON" default:"0 3 * * *"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
