// Package middleware holds the HTTP middleware chain: request IDs,
// structured request logging, OpenTelemetry instrumentation, per-client rate
// limiting, request timeouts, CORS and security headers, plus query
// parameter binding with go-playground/validator.
package middleware
