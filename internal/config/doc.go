// Package config provides centralized configuration management for the
// inventory summary service.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file (config.yaml, configs/config.yaml or INVSUM_CONFIG_FILE)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern INVSUM_<SECTION>_<FIELD>:
//
//	INVSUM_SERVER_PORT=8080
//	INVSUM_UPLOAD_MAX_ROWS=100000
//	INVSUM_SESSION_TTL=30m
//	INVSUM_LOGGING_LEVEL=debug
//	INVSUM_PATHS_EXPORTS_DIR=/var/lib/invsummary/exports
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := cfg.ResolvePaths()
package config
