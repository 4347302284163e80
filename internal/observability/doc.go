// Package observability provides structured logging and metrics
// for the external knowledge API.
//
// This package implements:
//   - zap logger construction from LOG_LEVEL / LOG_FORMAT
//   - Prometheus collectors for retrieval, authentication and HTTP traffic
//
// Every collector method is nil-safe so components can run without metrics.
package observability
