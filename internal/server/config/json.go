package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/blueprint/internal/flagx"
	"github.com/dmitrijs2005/blueprint/internal/timex"
)

// JSONConfig is the on-disk form of Config. Durations accept both "24h"
// and integer nanoseconds; absent fields keep their current value.
type JSONConfig struct {
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    string          `json:"log_level"`
	LogFormat                   string          `json:"log_format"`
}

// parseJSON loads the file named by -c or -config, if any.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.LogFormat, c.LogFormat)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
