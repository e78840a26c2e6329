// Package config handles configuration loading for mcpgate.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from MCPGATE_CONFIG environment variable
//  2. ~/.config/mcpgate/mcpgate.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	credentials:
//	  path: "${MCPGATE_CREDENTIALS}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//	  shutdown_timeout: "10s"
//
// Credentials:
//
//	credentials:
//	  path: "/etc/mcpgate/auth_config.toml"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
