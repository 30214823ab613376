// Package config handles configuration loading, parsing, and validation
// from an optional config file and KRAFTFIX_ prefixed environment variables.
// It provides type-safe access to the settings needed by the HTTP server,
// the stores, the session credential service and the read cache.
package config
