// Package config manages ledger configuration from a YAML file with
// environment variable overrides. The networks map resolves a network
// identifier to the ledger deployment address the client targets.
package config
