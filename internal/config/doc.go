// Package config loads the Player Connector configuration from environment
// variables.
//
// Load reads every setting with a sensible development default, so a bare
// `go run ./cmd/server` works against a local SurrealDB instance. Validate
// reports every problem at once via errors.Join rather than failing on the
// first one.
package config
