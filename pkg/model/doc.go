// Package model defines the database models for the vehicle history ledger.
//
// This package contains GORM models that map to the ledger's PostgreSQL
// schema, plus the small domain types shared by the server and client.
//
// # Core Models
//
//   - Vehicle: derived ownership state per registered VIN
//   - VehicleRecord: one append-only history entry, keyed by (vin, idx)
//   - RoleGrant: static role held by an address (admin, service, insurer)
//   - Account: next expected submission nonce per address
//
// # Database Schema
//
// The database uses PostgreSQL with the following tables:
//
//   - vehicles: current_owner per VIN
//   - vehicle_records: the per-VIN append-only history
//   - role_grants: static role assignments
//   - accounts: per-address nonce counters
package model
