// Package store provides storage abstractions for the ledger server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database
// implementation. This enables easier testing with mocks and an
// in-memory backend for development.
//
// # Available Stores
//
//   - LedgerStore: per-VIN append-only histories and ownership state
//   - RolesStore: static role grants (admin, service, insurer)
//   - AccountsStore: per-address submission nonces
package store
