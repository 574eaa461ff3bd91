// Package errors renders failures as RFC 7807 problem documents.
//
// Handlers pass any error to ErrorHandler.HandleError. Known report errors
// map to specific statuses: unsupported file formats to 415, missing
// required columns to 422 with a "missing" extension, row limits to 413
// and unknown sessions or sources to 404. APIError values keep their own
// status and error code. Everything else becomes a 500.
package errors
