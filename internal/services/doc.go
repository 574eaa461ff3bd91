// Package services implements the business logic between the HTTP handlers
// and the dataprocessing pipeline.
//
// SessionStore keeps each user's uploads in memory, keyed by a random
// session id. Uploading into a slot replaces that slot's row-set; nothing
// is persisted and idle sessions expire after the configured TTL.
//
// ReportService loads, validates and classifies uploads, then builds
// summaries, drill-downs and exports on demand from the stored row-sets.
// Every query recomputes from scratch, so results never depend on the
// order in which queries arrive.
//
// HealthService backs the liveness, readiness and version endpoints.
//
// Errors returned by services are sentinel values (ErrSessionNotFound,
// ErrSourceNotLoaded, ErrUnknownSlot, ErrReservedLabel, ErrNoData) or
// dataprocessing errors, wrapped with fmt.Errorf and inspected with
// errors.Is and errors.As.
package services
