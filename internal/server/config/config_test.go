package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
	assert.Equal(t, "secretKey", cfg.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	data := `{"endpoint_addr_grpc":":6000","secret_key":"from-file","access_token_validity_duration":"2h","log_level":"debug"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig([]string{"-c", path, "-s", "from-flag", "-token", "aaaaa-aa"})
	require.NoError(t, err)

	assert.Equal(t, ":6000", cfg.EndpointAddrGRPC)
	assert.Equal(t, "from-flag", cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_TokenValidityFlagInMinutes(t *testing.T) {
	cfg, err := LoadConfig([]string{"-t", "15"})
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadConfig([]string{"-c", bad})
	assert.Error(t, err)

	_, err = LoadConfig([]string{"-t", "0"})
	assert.ErrorContains(t, err, "token validity must be positive")

	_, err = LoadConfig([]string{"-t", "soon"})
	assert.Error(t, err)
}
