package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/enfa/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")

	cfg, err := config.Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(missing, true)
	assert.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "enfa.yaml", "to: json\nlog_level: debug\ncache_ttl: 90s\n")

	cfg, err := config.Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.From, "unset keys keep defaults")
	assert.Equal(t, "json", cfg.To)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Port)

	ttl, err := cfg.TTL()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, ttl)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "enfa.json", `{"port": 9090, "redis_addr": "localhost:6379"}`)

	cfg, err := config.Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Bad Format", "from: xml\n", "from"},
		{"Table Input", "from: table\n", "output only"},
		{"Bad Level", "log_level: loud\n", "log_level"},
		{"Bad Port", "port: 70000\n", "port"},
		{"Bad TTL", "cache_ttl: soon\n", "cache_ttl"},
		{"Short Key", "cache_key: c2hvcnQ=\n", "want 32 bytes"},
		{"Not YAML", "from: [\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "enfa.yaml", tt.content), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_Key(t *testing.T) {
	cfg := config.Default()
	key, err := cfg.Key()
	require.NoError(t, err)
	assert.Nil(t, key)

	cfg.CacheKey = "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8="
	key, err = cfg.Key()
	require.NoError(t, err)
	assert.Len(t, key, config.KeySize)
	assert.Equal(t, byte(31), key[31])
}
