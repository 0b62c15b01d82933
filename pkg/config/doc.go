// Package config loads mathgen configuration from YAML with environment
// variable overrides.
//
// Loading runs in four steps: read the YAML file, apply defaults to every
// zero-valued field, apply MATHGEN_* environment overrides, and validate the
// result. All validation failures are reported together in a
// ValidationError.
//
// # Example
//
//	parser:
//	  variables: ["a", "b"]
//	  conventional_precedence: false
//	output:
//	  default_language: python
//	server:
//	  listen_address: "127.0.0.1:8090"
//	  cache_size: 1024
//	history:
//	  enabled: true
//	  backend: sqlite
//	  sqlite:
//	    path: data/history.db
//	  retention:
//	    days: 30
//	    prune_schedule: "0 3 * * *"
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//
// Environment variables follow MATHGEN_SECTION_FIELD, for example
// MATHGEN_SERVER_LISTEN_ADDRESS or MATHGEN_PARSER_VARIABLES=a,b.
//
// The CLI loads the configuration once and installs it with SetConfig.
// Tests should construct a Config directly and call ApplyDefaults.
package config
