// Package config handles configuration for the development backend,
// including defaults, a JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default outside local runs.
//   - AccessTokenValidityDuration: lifetime of issued dev tokens.
//   - LogLevel / LogFormat: slog handler settings.
type Config struct {
	EndpointAddrGRPC            string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
	LogFormat                   string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.EndpointAddrGRPC == "" {
		errs = append(errs, errors.New("grpc address is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, fmt.Errorf("token validity must be positive, got %s", c.AccessTokenValidityDuration))
	}
	return errors.Join(errs...)
}
