package middleware

import "github.com/aretw0/enfa/pkg/ports"

// Middleware allows wrapping a ResultCache to add behavior.
type Middleware func(ports.ResultCache) ports.ResultCache

// Chain applies mws to cache so that the first middleware is outermost.
func Chain(cache ports.ResultCache, mws ...Middleware) ports.ResultCache {
	for i := len(mws) - 1; i >= 0; i-- {
		cache = mws[i](cache)
	}
	return cache
}
