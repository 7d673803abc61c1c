package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/enfa/internal/config"
	"github.com/aretw0/enfa/internal/logging"
	"github.com/aretw0/enfa/pkg/domain"
	"github.com/spf13/pflag"
)

// Settings is the resolved configuration of one command invocation:
// flags over the config file over the built-in defaults.
type Settings struct {
	From      domain.Format
	To        domain.Format
	Level     slog.Level
	Port      int
	RedisAddr string
	CacheTTL  time.Duration
	CacheKey  []byte
}

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// LoadSettings reads the config file named by --config (or the default
// file, which may be absent) and applies every flag the user set.
func LoadSettings(flags *pflag.FlagSet) (Settings, error) {
	path := config.DefaultPath
	explicit := false
	if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
		path = f.Value.String()
		explicit = f.Changed
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return Settings{}, err
	}

	override := func(name string, dst *string) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	override("from", &cfg.From)
	override("to", &cfg.To)
	override("log-level", &cfg.LogLevel)
	override("redis-addr", &cfg.RedisAddr)
	override("cache-ttl", &cfg.CacheTTL)
	if v := os.Getenv(config.KeyEnv); v != "" {
		cfg.CacheKey = v
	}
	if f := flags.Lookup("port"); f != nil && f.Changed {
		if cfg.Port, err = flags.GetInt("port"); err != nil {
			return Settings{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	// Validate has checked every field, so the conversions below succeed.
	from, _ := domain.ParseFormat(cfg.From)
	to, _ := domain.ParseFormat(cfg.To)
	level, _ := logging.ParseLevel(cfg.LogLevel)
	ttl, _ := cfg.TTL()
	key, _ := cfg.Key()
	return Settings{
		From:      from,
		To:        to,
		Level:     level,
		Port:      cfg.Port,
		RedisAddr: cfg.RedisAddr,
		CacheTTL:  ttl,
		CacheKey:  key,
	}, nil
}
