package config

import (
	"time"

	"invsummary/pkg/contracts"
)

// Application constants
const (
	AppName    = "Inventory Summary"
	AppVersion = contracts.Version

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Uploads
	DefaultMaxUploadSize int64 = 32 << 20 // 32MB
	DefaultMaxRows             = 500000

	// Sessions
	DefaultSessionTTL    = 2 * time.Hour
	DefaultMaxSessions   = 256
	DefaultSweepInterval = 5 * time.Minute

	// File Paths (relative to working directory)
	DefaultExportsDir = "exports"
	DefaultLogsDir    = "logs"
)
