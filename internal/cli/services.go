package cli

import (
	"context"
	"fmt"
	"net"

	"github.com/aretw0/enfa"
	httpadapter "github.com/aretw0/enfa/internal/adapters/http"
	mcpadapter "github.com/aretw0/enfa/internal/adapters/mcp"
	"github.com/aretw0/enfa/internal/adapters/memory"
	"github.com/aretw0/enfa/internal/adapters/redis"
	"github.com/aretw0/enfa/pkg/observability"
	"github.com/aretw0/enfa/pkg/persistence/middleware"
	"github.com/aretw0/enfa/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MemoryCacheEntries bounds the in-process cache used without Redis.
const MemoryCacheEntries = 1024

// Serve runs the HTTP service until ctx is done.
func Serve(ctx context.Context, s Settings, streams Streams) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return ServeListener(ctx, s, ln, streams)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, s Settings, ln net.Listener, streams Streams) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	cache, closeCache, err := openCache(ctx, s)
	if err != nil {
		ln.Close()
		return err
	}
	defer closeCache()

	conv, logger := newConverter(s, streams,
		enfa.WithLifecycleHooks(metrics.Hooks()),
		enfa.WithCache(cache),
		enfa.WithCacheObserver(metrics.ObserveCache),
	)

	handler := httpadapter.NewHandler(&httpadapter.Server{
		Converter: conv,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:    logger,
		Version:   enfa.Version,
	})

	logger.Info("starting enfa server", "address", ln.Addr().String(), "redis", s.RedisAddr != "")
	if err := httpadapter.Serve(ctx, ln, handler); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("enfa server stopped")
	return nil
}

func openCache(ctx context.Context, s Settings) (ports.ResultCache, func(), error) {
	var mws []middleware.Middleware
	if s.CacheKey != nil {
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: s.CacheKey})
		if err != nil {
			return nil, nil, err
		}
		mws = append(mws, mw)
	}

	if s.RedisAddr == "" {
		return middleware.Chain(memory.New(memory.WithLimit(MemoryCacheEntries)), mws...), func() {}, nil
	}
	rc := redis.New(s.RedisAddr, "", 0, redis.WithTTL(s.CacheTTL))
	if err := rc.Ping(ctx); err != nil {
		rc.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", s.RedisAddr, err)
	}
	return middleware.Chain(rc, mws...), func() { rc.Close() }, nil
}

// MCP runs the MCP server on standard input and output.
func MCP(s Settings, streams Streams) error {
	conv, logger := newConverter(s, streams)
	logger.Info("starting enfa MCP server (stdio)")
	return mcpadapter.NewServer(conv, enfa.Version).ServeStdio()
}
