// Package app wires the inventory summary HTTP service together and manages
// its lifecycle.
//
// # Initialization Flow
//
//  1. Validate configuration and resolve the export and log directories
//  2. Initialize OpenTelemetry tracing and the Prometheus-backed meter
//  3. Create the session store, report service and health service
//  4. Build the chi router and its middleware chain
//  5. Create the HTTP server
//
// # Middleware Order
//
//	RequestID → RealIP → OTel → StructuredLogger → Recoverer →
//	SecurityHeaders → CORS → RateLimiter → Timeout
//
// /metrics is registered outside the group and is served by the
// Prometheus exporter's registry.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// # Graceful Shutdown
//
// Run stops on SIGINT or SIGTERM. Start runs the server and the session
// sweeper in one errgroup; when its context ends the server drains active
// requests within Server.ShutdownTimeout and the OpenTelemetry providers
// are flushed.
package app
