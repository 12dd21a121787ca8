// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Upload   UploadConfig
	S3       S3Config
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

// DatabaseConfig selects the gorm driver and its DSN.
type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"sqlite"` // sqlite | postgres
	DSN        string `env:"DB_DSN" envDefault:"db/blogs.db"`
	Debug      bool   `env:"DB_DEBUG"`
	Migrations bool   `env:"MIGRATIONS"` // run embedded SQL migrations instead of AutoMigrate
}

// SessionConfig holds cookie session settings.
type SessionConfig struct {
	Secret      string        `env:"SESSION_SECRET" envDefault:"devsessionsecret"`
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RememberTTL time.Duration `env:"REMEMBER_TTL" envDefault:"720h"`
	Secure      bool          `env:"SESSION_SECURE"` // set behind TLS
}

// UploadConfig selects where attachments are stored.
type UploadConfig struct {
	Backend string `env:"UPLOAD_BACKEND" envDefault:"local"` // local | s3
	Folder  string `env:"UPLOAD_FOLDER" envDefault:"static/uploads"`
}

// S3Config is used when UPLOAD_BACKEND=s3. Endpoint is optional (MinIO, R2, ...).
type S3Config struct {
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	Bucket    string `env:"S3_BUCKET" envDefault:"blogs-uploads"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	Endpoint  string `env:"S3_ENDPOINT"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev       bool   `env:"DEV"`
	SentryDSN string `env:"SENTRY_DSN"`
}

// Load reads an optional .env file, then configuration from environment variables.
// Explicit environment variables win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Upload.Backend {
	case "local", "s3":
	default:
		return fmt.Errorf("unsupported UPLOAD_BACKEND %q", c.Upload.Backend)
	}
	return nil
}
