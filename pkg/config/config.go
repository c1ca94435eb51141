package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// ErrMissingAccessToken is returned by Validate when no page access token is
// configured.
var ErrMissingAccessToken = errors.New("config: access_token is required")

const (
	// DefaultBaseURL is the platform graph endpoint root.
	DefaultBaseURL = "https://graph.facebook.com/v2.12/"
	// DefaultNotificationType is applied to sends that do not override it.
	DefaultNotificationType = "REGULAR"
)

// Config holds everything the SDK recognizes at construction time. Values
// load from a JSON file with PAGEWIRE_* environment variables layered on top.
type Config struct {
	AccessToken      string        `env:"PAGEWIRE_ACCESS_TOKEN"      json:"access_token"`
	VerifyToken      string        `env:"PAGEWIRE_VERIFY_TOKEN"      json:"verify_token"`
	WebhookPath      string        `env:"PAGEWIRE_WEBHOOK_PATH"      json:"webhook_path"`
	NotificationType string        `env:"PAGEWIRE_NOTIFICATION_TYPE" json:"notification_type"`
	BaseURL          string        `env:"PAGEWIRE_BASE_URL"          json:"base_url"`
	Gateway          GatewayConfig `json:"gateway"`
}

// GatewayConfig holds the webhook server bind address for the gateway
// command.
type GatewayConfig struct {
	Host string `env:"PAGEWIRE_GATEWAY_HOST" json:"host"`
	Port int    `env:"PAGEWIRE_GATEWAY_PORT" json:"port"`
}

func DefaultConfig() *Config {
	return &Config{
		WebhookPath:      "/",
		NotificationType: DefaultNotificationType,
		BaseURL:          DefaultBaseURL,
		Gateway: GatewayConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}
}

// LoadConfig reads the JSON file at path (a missing file falls back to
// defaults) and overlays environment variables.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate reports whether the config can construct a client.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrMissingAccessToken
	}
	return nil
}

// applyDefaults restores defaults for fields an explicit config file may have
// blanked out.
func (c *Config) applyDefaults() {
	if c.WebhookPath == "" {
		c.WebhookPath = "/"
	}
	if c.NotificationType == "" {
		c.NotificationType = DefaultNotificationType
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
}
