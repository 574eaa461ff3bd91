// Package http implements the HTTP handlers of the inventory summary
// service. Handlers stay thin: they bind and validate request input, call
// the report service, and translate results into JSON, CSV or XLSX
// responses.
//
// # Routes
//
//	POST   /api/sessions                                  open a session
//	GET    /api/sessions/{sessionID}                      session metadata
//	DELETE /api/sessions/{sessionID}                      drop a session
//	PUT    /api/sessions/{sessionID}/inventory/{slot}     upload HK, USA or IND
//	GET    /api/sessions/{sessionID}/inventory/summary    Summary and For Web tables
//	GET    /api/sessions/{sessionID}/inventory/summary.xlsx
//	GET    /api/sessions/{sessionID}/inventory/drilldown?source=&metric=
//	GET    /api/sessions/{sessionID}/inventory/export?source=&metric=
//	PUT    /api/sessions/{sessionID}/rap                  upload the RAP file
//	GET    /api/sessions/{sessionID}/rap/summary
//	GET    /api/sessions/{sessionID}/rap/drilldown?metric=|country=
//	GET    /api/sessions/{sessionID}/rap/export?metric=|country=
//
// # Error Handling
//
// Every failure is answered with RFC 7807 problem details produced by
// internal/errors. An inventory file missing required columns is not an
// error: the upload succeeds with valid=false and the source is listed as
// rejected in the summary.
package http
