// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// ShutdownTimeout bounds graceful drain on SIGTERM.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"` // settings cache TTL
}

type MikrotikConfig struct {
	Host     string `yaml:"host"` // www-ssl service must be enabled on the router
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Insecure bool   `yaml:"insecure"` // skip TLS verification (self-signed router cert)
}

type CampayConfig struct {
	// Optional shared token. When set, webhook deliveries must carry it in the
	// X-Webhook-Token header; Campay does not sign payloads beyond that.
	WebhookSecret string `yaml:"webhook_secret"`
}

type FlutterwaveConfig struct {
	SecretKey  string `yaml:"secret_key"`  // bearer key for the verify endpoint
	SecretHash string `yaml:"secret_hash"` // expected verif-hash header value
	Currency   string `yaml:"currency"`    // expected settlement currency
}

type PaymentConfig struct {
	Campay      CampayConfig      `yaml:"campay"`
	Flutterwave FlutterwaveConfig `yaml:"flutterwave"`
}

type AdminConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	Password   string        `yaml:"password"` // login password for minting admin sessions
}

type IdentityConfig struct {
	URL        string `yaml:"url"`         // hosted identity provider admin API base
	ServiceKey string `yaml:"service_key"` // elevated credential, never exposed to clients
}

type TelegramConfig struct {
	Token  string `yaml:"token"`   // empty disables ops alerts
	ChatID int64  `yaml:"chat_id"` // admin chat receiving alerts
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Mikrotik MikrotikConfig `yaml:"mikrotik"`
	Payment  PaymentConfig  `yaml:"payment"`
	Admin    AdminConfig    `yaml:"admin"`
	Identity IdentityConfig `yaml:"identity"`
	Telegram TelegramConfig `yaml:"telegram"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Payment.Flutterwave.Currency == "" {
		cfg.Payment.Flutterwave.Currency = "XAF"
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Mikrotik.Host == "" || cfg.Mikrotik.User == "" {
		return nil, errors.New("mikrotik.host and mikrotik.user are required")
	}
	if cfg.Admin.JWTSecret == "" {
		return nil, errors.New("admin.jwt_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
