/*
Package observability provides Prometheus instrumentation for the converter.

Metrics are fed through domain.LifecycleHooks, so any host that accepts hooks
(the library facade, the HTTP server) can be instrumented without changes
to the core.
*/
package observability
