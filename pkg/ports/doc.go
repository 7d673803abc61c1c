/*
Package ports defines the driven ports (interfaces) of the converter.

These interfaces decouple the conversion pipeline from external
implementations, so the same facade runs with no cache, an in-process
cache or a shared Redis cache.

# Key Interfaces

  - ResultCache: stores converted output keyed by a digest of the request.
*/
package ports
