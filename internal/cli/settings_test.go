package cli_test

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/enfa/internal/cli"
	"github.com/aretw0/enfa/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("from", "", "")
	fs.String("to", "", "")
	fs.String("log-level", "", "")
	fs.Int("port", 0, "")
	fs.String("redis-addr", "", "")
	fs.String("cache-ttl", "", "")
	return fs
}

func TestLoadSettings_Precedence(t *testing.T) {
	path := writeFile(t, "enfa.yaml", "to: yaml\nlog_level: debug\nport: 9000\ncache_ttl: 1m\n")

	fs := flagSet()
	require.NoError(t, fs.Parse([]string{"--config", path, "--to", "json", "--redis-addr", "localhost:6379"}))

	s, err := cli.LoadSettings(fs)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatAuto, s.From)
	assert.Equal(t, domain.FormatJSON, s.To, "flags win over the file")
	assert.Equal(t, slog.LevelDebug, s.Level)
	assert.Equal(t, 9000, s.Port)
	assert.Equal(t, "localhost:6379", s.RedisAddr)
	assert.Equal(t, time.Minute, s.CacheTTL)
}

func TestLoadSettings_ExplicitConfigMustExist(t *testing.T) {
	fs := flagSet()
	require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}))

	_, err := cli.LoadSettings(fs)
	assert.Error(t, err)
}

func TestLoadSettings_InvalidFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	fs := flagSet()
	require.NoError(t, fs.Parse([]string{"--from", "table"}))

	_, err := cli.LoadSettings(fs)
	assert.ErrorContains(t, err, "output only")
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := cli.LoadSettings(flagSet())
	require.NoError(t, err)
	assert.Equal(t, domain.FormatGrid, s.To)
	assert.Equal(t, slog.LevelWarn, s.Level)
	assert.Equal(t, 8080, s.Port)
}

func TestLoadSettings_CacheKeyFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENFA_CACHE_KEY", "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8=")

	s, err := cli.LoadSettings(flagSet())
	require.NoError(t, err)
	require.Len(t, s.CacheKey, 32)
	assert.Equal(t, byte(1), s.CacheKey[1])

	t.Setenv("ENFA_CACHE_KEY", "short")
	_, err = cli.LoadSettings(flagSet())
	assert.ErrorContains(t, err, "cache_key")
}
