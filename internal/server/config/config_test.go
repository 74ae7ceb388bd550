package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, "default", cfg.KeyID)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 30*time.Second, cfg.JWTLeeway)
	assert.Equal(t, 15*time.Minute, cfg.LastLoginDebounce)
	assert.Equal(t, "clipforge", cfg.JWTIssuer)
	assert.Equal(t, "clipforge-api", cfg.JWTAudience)
	assert.Equal(t, "local", cfg.StorageType)
	assert.False(t, cfg.IsProduction())
}

func TestParseJson_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")

	payload := map[string]any{
		"environment":                    "production",
		"endpoint_addr_http":             ":9999",
		"jwt_algorithm":                  "RS256",
		"private_key_path":               "/keys/jwt.pem",
		"public_key_path":                "/keys/jwt.pub",
		"key_id":                         "2026-01",
		"access_token_validity_duration": "45m",
		"jwt_leeway":                     "10s",
		"last_login_debounce":            "5m",
		"bcrypt_cost":                    12,
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, b, 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test", "-c", file}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, "RS256", cfg.JWTAlgorithm)
	assert.Equal(t, "2026-01", cfg.KeyID)
	assert.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 10*time.Second, cfg.JWTLeeway)
	assert.Equal(t, 5*time.Minute, cfg.LastLoginDebounce)
	assert.Equal(t, 12, cfg.BcryptCost)

	// values absent from the file keep their defaults
	assert.Equal(t, "clipforge", cfg.JWTIssuer)
	assert.Equal(t, "local", cfg.StorageType)
}

func TestParseJson_NoFileIsNoop(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
}

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test", "-a", ":7070", "-alg", "ES256", "-t", "5", "-l", "0", "-st", "s3"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "ES256", cfg.JWTAlgorithm)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, time.Duration(0), cfg.JWTLeeway)
	assert.Equal(t, "s3", cfg.StorageType)
}
