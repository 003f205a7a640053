package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/blueprint/internal/flagx"
	"github.com/dmitrijs2005/blueprint/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form. Absent fields leave the current value;
// intervals use timex.Duration so "3s" and integer nanoseconds both work.
type FileConfig struct {
	BackendAddr         *string         `json:"backend_addr" yaml:"backend_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	CallTimeout         *timex.Duration `json:"call_timeout" yaml:"call_timeout"`
	DatabasePath        *string         `json:"database_path" yaml:"database_path"`
	StorageQuotaPages   *int            `json:"storage_quota_pages" yaml:"storage_quota_pages"`
	StorageReadOnly     *bool           `json:"storage_read_only" yaml:"storage_read_only"`
	LogLevel            *string         `json:"log_level" yaml:"log_level"`
	LogFormat           *string         `json:"log_format" yaml:"log_format"`
	BridgeAddr          *string         `json:"bridge_addr" yaml:"bridge_addr"`
	CORSOrigins         []string        `json:"cors_origins" yaml:"cors_origins"`
	Blob                *FileBlobConfig `json:"blob" yaml:"blob"`
}

type FileBlobConfig struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Region    string `json:"region" yaml:"region"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	PublicURL string `json:"public_url" yaml:"public_url"`
}

func applyFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.BackendAddr, fc.BackendAddr)
	set(&cfg.DatabasePath, fc.DatabasePath)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogFormat, fc.LogFormat)
	set(&cfg.BridgeAddr, fc.BridgeAddr)

	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.CallTimeout != nil {
		cfg.CallTimeout = fc.CallTimeout.Duration
	}
	if fc.StorageQuotaPages != nil {
		cfg.StorageQuotaPages = *fc.StorageQuotaPages
	}
	if fc.StorageReadOnly != nil {
		cfg.StorageReadOnly = *fc.StorageReadOnly
	}
	if fc.CORSOrigins != nil {
		cfg.CORSOrigins = fc.CORSOrigins
	}
	if b := fc.Blob; b != nil {
		cfg.Blob.Endpoint = b.Endpoint
		if b.Region != "" {
			cfg.Blob.Region = b.Region
		}
		cfg.Blob.Bucket = b.Bucket
		cfg.Blob.AccessKey = b.AccessKey
		cfg.Blob.SecretKey = b.SecretKey
		cfg.Blob.PublicURL = b.PublicURL
	}
}
