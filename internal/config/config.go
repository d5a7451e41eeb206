// Package config loads and validates CLI config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds client configuration loaded from the environment.
type Config struct {
	// APIBaseURL is the asset-management backend base URL (e.g. http://localhost:5000).
	APIBaseURL string `mapstructure:"ASSETDESK_API_URL"`
	// TokenPath is the credential file location; empty means the per-user default.
	TokenPath string `mapstructure:"ASSETDESK_TOKEN_PATH"`
	// NoPersist disables the credential file; the session then lives only for this run.
	NoPersist bool `mapstructure:"ASSETDESK_NO_PERSIST"`
	// AssignedPageLimit is the page size requested from GET /assigned.
	AssignedPageLimit int `mapstructure:"ASSETDESK_ASSIGNED_LIMIT"`
	// OTLPEndpoint is the OTLP gRPC collector endpoint for telemetry; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored. Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("ASSETDESK_API_URL", "http://localhost:5000")
	v.SetDefault("ASSETDESK_TOKEN_PATH", "")
	v.SetDefault("ASSETDESK_NO_PERSIST", false)
	v.SetDefault("ASSETDESK_ASSIGNED_LIMIT", 1000)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if cfg.APIBaseURL == "" {
		return nil, errors.New("config: ASSETDESK_API_URL must be set")
	}
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return nil, errors.New("config: ASSETDESK_API_URL must be an http(s) URL")
	}
	if cfg.AssignedPageLimit <= 0 {
		cfg.AssignedPageLimit = 1000
	}

	return &cfg, nil
}
