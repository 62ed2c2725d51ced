package store

import "github.com/vinledger/vinledger/pkg/model"

// LedgerStore is the authoritative per-VIN append-only record store.
// Every mutation is atomic: either the record is appended and any
// derived state updated, or nothing is persisted. Role and ownership
// checks are enforced here regardless of what the client verified.
type LedgerStore interface {
	// RegisterVehicle appends the Registration record for a new VIN and
	// sets its current owner. Caller must hold the admin role.
	RegisterVehicle(vin, initialOwner, payload, caller string) (*model.VehicleRecord, error)

	// TransferOwnership appends a Transfer record and updates the
	// current owner. Caller must be the current owner.
	TransferOwnership(vin, newOwner, payload, caller string) (*model.VehicleRecord, error)

	// AppendRecord appends a Service, Accident, or Odometer record.
	// Caller must hold the role required by the record type: service
	// for Service and Odometer, insurer for Accident.
	AppendRecord(vin string, recordType model.RecordType, payload, caller string) (*model.VehicleRecord, error)

	// HistoryLength returns the record count for a VIN, 0 if the VIN
	// is unregistered. It never fails on an unknown VIN.
	HistoryLength(vin string) (int, error)

	// GetRecord returns the record at index, ErrOutOfRange beyond the
	// history length.
	GetRecord(vin string, index int) (*model.VehicleRecord, error)

	// CurrentOwner returns the current owner address, ErrNotRegistered
	// for an unknown VIN.
	CurrentOwner(vin string) (string, error)
}

// RolesStore maps addresses to their statically granted roles. The
// owner capability is derived from the ledger, never stored here.
type RolesStore interface {
	// HasRole reports whether address holds role.
	HasRole(address string, role model.Role) (bool, error)

	// RolesOf returns the static roles held by address.
	RolesOf(address string) ([]model.Role, error)

	// GrantRole grants role to address. Caller must hold admin.
	// Granting an already-held role is a no-op, not an error.
	GrantRole(address string, role model.Role, caller string) error

	// BootstrapAdmin grants admin directly, bypassing the caller
	// check. Used only by out-of-band setup tooling.
	BootstrapAdmin(address string) error
}

// AccountsStore tracks per-address submission nonces for replay
// protection.
type AccountsStore interface {
	// NextNonce returns the nonce the next envelope from address must
	// carry. Unknown addresses start at 0.
	NextNonce(address string) (uint64, error)

	// ConsumeNonce atomically checks that nonce is the next expected
	// value for address and advances the counter. Mismatch yields
	// ErrBadNonce and leaves the counter unchanged.
	ConsumeNonce(address string, nonce uint64) error
}
