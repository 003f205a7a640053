package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDotEnv(t *testing.T) {
	t.Helper()
	orig := loadDotEnv
	loadDotEnv = func(...string) error { return nil }
	t.Cleanup(func() { loadDotEnv = orig })
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.BackendAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "studio.db", c.DatabasePath)
	assert.False(t, c.Blob.Enabled())
	require.NoError(t, c.Validate())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	noDotEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:50051", cfg.BackendAddr)
	assert.Equal(t, "127.0.0.1:8080", cfg.BridgeAddr)
}

func TestLoad_Precedence(t *testing.T) {
	noDotEnv(t)
	t.Setenv("BLUEPRINT_BACKEND_ADDR", "env:1")
	t.Setenv("BLUEPRINT_DATABASE_PATH", "env.db")
	t.Setenv("BLUEPRINT_LOG_LEVEL", "warn")
	t.Setenv("BLUEPRINT_ONLINE_CHECK_INTERVAL", "7s")

	path := writeFile(t, "studio.json", `{"backend_addr":"file:2","database_path":"file.db","call_timeout":"4s"}`)

	cfg, err := Load([]string{"-c", path, "-a", "flag:3", "-unknown", "x"})
	require.NoError(t, err)

	assert.Equal(t, "flag:3", cfg.BackendAddr)
	assert.Equal(t, "file.db", cfg.DatabasePath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, 4*time.Second, cfg.CallTimeout)
}

func TestLoad_YAMLFile(t *testing.T) {
	noDotEnv(t)
	path := writeFile(t, "studio.yaml", `
backend_addr: yaml:1
online_check_interval: 2s
storage_quota_pages: 64
storage_read_only: true
cors_origins: [http://localhost:3000]
blob:
  endpoint: http://127.0.0.1:9000
  bucket: studio
`)

	cfg, err := Load([]string{"-config=" + path})
	require.NoError(t, err)

	assert.Equal(t, "yaml:1", cfg.BackendAddr)
	assert.Equal(t, 2*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.Blob.Enabled())
	assert.Equal(t, "us-east-1", cfg.Blob.Region)

	opts := cfg.StoreOptions()
	assert.Equal(t, 64, opts.QuotaPages)
	assert.True(t, opts.ReadOnly)
}

func TestLoad_IntervalFlagIsSeconds(t *testing.T) {
	noDotEnv(t)

	cfg, err := Load([]string{"-i", "9"})
	require.NoError(t, err)
	assert.Equal(t, 9*time.Second, cfg.OnlineCheckInterval)
}

func TestLoad_Errors(t *testing.T) {
	noDotEnv(t)

	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("BLUEPRINT_CALL_TIMEOUT", "soon")
		_, err := Load(nil)
		require.ErrorContains(t, err, "BLUEPRINT_CALL_TIMEOUT")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := Load([]string{"-c", writeFile(t, "bad.json", "{")})
		require.Error(t, err)
	})

	t.Run("invalid result", func(t *testing.T) {
		_, err := Load([]string{"-i", "0"})
		require.ErrorContains(t, err, "interval")
	})
}

func TestApplyEnv_Lists(t *testing.T) {
	cfg := &Config{}
	env := map[string]string{
		"BLUEPRINT_CORS_ORIGINS":      " http://a , ,http://b",
		"BLUEPRINT_STORAGE_READ_ONLY": "true",
		"BLUEPRINT_TOKEN":             "tok",
	}
	require.NoError(t, applyEnv(cfg, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))

	assert.Equal(t, []string{"http://a", "http://b"}, cfg.CORSOrigins)
	assert.True(t, cfg.StorageReadOnly)
	assert.Equal(t, "tok", cfg.AccessToken)
}

func TestValidate(t *testing.T) {
	c := Config{}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend address")
	assert.Contains(t, err.Error(), "database path")
}
