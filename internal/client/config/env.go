package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "BLUEPRINT_"

var loadDotEnv = godotenv.Load

type lookupFunc func(string) (string, bool)

// applyEnv overlays BLUEPRINT_* variables. Durations accept Go syntax
// ("5s"); lists are comma separated.
func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	str("BACKEND_ADDR", &cfg.BackendAddr)
	str("DATABASE_PATH", &cfg.DatabasePath)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("BRIDGE_ADDR", &cfg.BridgeAddr)
	str("TOKEN", &cfg.AccessToken)
	str("BLOB_ENDPOINT", &cfg.Blob.Endpoint)
	str("BLOB_REGION", &cfg.Blob.Region)
	str("BLOB_BUCKET", &cfg.Blob.Bucket)
	str("BLOB_ACCESS_KEY", &cfg.Blob.AccessKey)
	str("BLOB_SECRET_KEY", &cfg.Blob.SecretKey)
	str("BLOB_PUBLIC_URL", &cfg.Blob.PublicURL)

	if v, ok := lookup(envPrefix + "CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitList(v)
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval},
		{"CALL_TIMEOUT", &cfg.CallTimeout},
	}
	for _, d := range durations {
		v, ok := lookup(envPrefix + d.name)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, d.name, err)
		}
		*d.dst = parsed
	}

	if v, ok := lookup(envPrefix + "STORAGE_QUOTA_PAGES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSTORAGE_QUOTA_PAGES: %w", envPrefix, err)
		}
		cfg.StorageQuotaPages = n
	}
	if v, ok := lookup(envPrefix + "STORAGE_READ_ONLY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSTORAGE_READ_ONLY: %w", envPrefix, err)
		}
		cfg.StorageReadOnly = b
	}

	return nil
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
