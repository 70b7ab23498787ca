// Package config loads runtime configuration for the healthplanner CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file selected via
//     -e or -env (default ".env" if present). Real environment variables win
//     over the file.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL, e.g. http://localhost:8000
//	-d string   data directory
//	-s string   credential store: sqlite or keyring
//	-t int      request timeout (seconds)
//	-v          debug logging
//
// Environment
//
//	HEALTHPLANNER_API_BASE
//	HEALTHPLANNER_DATA_DIR
//	HEALTHPLANNER_CREDENTIAL_STORE
//	HEALTHPLANNER_REQUEST_TIMEOUT   duration, e.g. "10s"
//	HEALTHPLANNER_DEBUG             boolean
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base": "http://localhost:8000",
//	  "data_dir": ".healthplanner",
//	  "credential_store": "sqlite",
//	  "request_timeout": "15s",
//	  "debug": false
//	}
package config
