/*
Package observability turns the studio lifecycle hooks into Prometheus metrics
and structured log lines.

Metrics registers its collectors on a caller supplied registry so tests and
embedding applications stay isolated from the global default registry.
*/
package observability
