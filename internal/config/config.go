package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/enfa/internal/logging"
	"github.com/aretw0/enfa/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = ".enfa.yaml"

// KeyEnv overrides cache_key so the key can stay out of config files.
const KeyEnv = "ENFA_CACHE_KEY"

// KeySize is the decoded length of cache_key.
const KeySize = 32

// Config holds defaults for the command line and the services.
type Config struct {
	From      string `yaml:"from" json:"from"`
	To        string `yaml:"to" json:"to"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
	Port      int    `yaml:"port" json:"port"`
	RedisAddr string `yaml:"redis_addr" json:"redis_addr"`
	CacheTTL  string `yaml:"cache_ttl" json:"cache_ttl"`
	// CacheKey is a base64 AES-256 key. When set, cached results are
	// encrypted before they are stored.
	CacheKey string `yaml:"cache_key" json:"cache_key"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		From:     string(domain.FormatAuto),
		To:       string(domain.FormatGrid),
		LogLevel: "warn",
		Port:     8080,
		CacheTTL: "10m",
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// A missing file yields the defaults unless mustExist is set.
func Load(path string, mustExist bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	var errs []error
	if f, err := domain.ParseFormat(c.From); err != nil {
		errs = append(errs, fmt.Errorf("from: %w", err))
	} else if f == domain.FormatTable {
		errs = append(errs, fmt.Errorf("from: %w: table is output only", domain.ErrUnknownFormat))
	}
	if _, err := domain.ParseFormat(c.To); err != nil {
		errs = append(errs, fmt.Errorf("to: %w", err))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port: %d out of range", c.Port))
	}
	if _, err := c.TTL(); err != nil {
		errs = append(errs, fmt.Errorf("cache_ttl: %w", err))
	}
	if _, err := c.Key(); err != nil {
		errs = append(errs, fmt.Errorf("cache_key: %w", err))
	}
	return errors.Join(errs...)
}

// TTL parses CacheTTL. Empty means no expiry.
func (c Config) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}
	return d, nil
}

// Key decodes CacheKey. Empty means no encryption.
func (c Config) Key() ([]byte, error) {
	if c.CacheKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.CacheKey)
	if err != nil {
		return nil, fmt.Errorf("not base64: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("want %d bytes, got %d", KeySize, len(key))
	}
	return key, nil
}
