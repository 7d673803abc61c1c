package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/enfa/pkg/ports"
	"github.com/klauspost/compress/zstd"
	backend "github.com/redis/go-redis/v9"
)

// Payload markers written before every stored value.
const (
	markRaw  byte = 'r'
	markZstd byte = 'z'
)

var (
	enc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	dec, _ = zstd.NewReader(nil)
)

// Cache implements ports.ResultCache using Redis.
type Cache struct {
	client   *backend.Client
	prefix   string
	ttl      time.Duration
	compress int
}

type Option func(*Cache)

// WithTTL sets the expiration for cached results.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached results.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithCompression stores values of at least minSize bytes zstd-compressed.
// A negative minSize disables compression.
func WithCompression(minSize int) Option {
	return func(c *Cache) {
		c.compress = minSize
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client:   client,
		prefix:   "enfa:result:",
		compress: 512,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get implements ports.ResultCache.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return decode(val)
}

// Put implements ports.ResultCache.
func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, c.key(key), c.encode(value), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) encode(value []byte) []byte {
	if c.compress >= 0 && len(value) >= c.compress {
		out := make([]byte, 1, 1+len(value)/2)
		out[0] = markZstd
		return enc.EncodeAll(value, out)
	}
	out := make([]byte, 0, 1+len(value))
	out = append(out, markRaw)
	return append(out, value...)
}

func decode(val []byte) ([]byte, error) {
	if len(val) == 0 {
		return nil, fmt.Errorf("corrupt cache entry: empty")
	}
	switch val[0] {
	case markRaw:
		return append([]byte(nil), val[1:]...), nil
	case markZstd:
		out, err := dec.DecodeAll(val[1:], nil)
		if err != nil {
			return nil, fmt.Errorf("corrupt cache entry: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("corrupt cache entry: unknown marker %q", val[0])
}
