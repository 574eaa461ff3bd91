package services

import "errors"

// Report service errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Upload errors
	ErrUnknownSlot     = errors.New("unknown inventory slot")
	ErrReservedLabel   = errors.New("source label is reserved")
	ErrSourceNotLoaded = errors.New("source not loaded")

	// Query errors
	ErrNoData = errors.New("no data uploaded")
)
