package store

import "errors"

// The ledger's failure taxonomy. Handlers map these onto structured
// HTTP error codes; the client maps them back.
var (
	// ErrUnauthorized means the caller lacks the role or ownership a
	// mutation requires. A previously-valid owner seeing this on a
	// transfer signals a concurrent transfer, not a bug.
	ErrUnauthorized = errors.New("caller is not authorized for this operation")

	// ErrNotRegistered means the VIN has no Registration record yet.
	ErrNotRegistered = errors.New("vehicle is not registered")

	// ErrAlreadyRegistered means the VIN already has a history.
	ErrAlreadyRegistered = errors.New("vehicle is already registered")

	// ErrInvalidAddress means an identity argument is malformed.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrEmptyVIN means the VIN argument is empty.
	ErrEmptyVIN = errors.New("VIN cannot be empty")

	// ErrOutOfRange means a record index is beyond the history length.
	ErrOutOfRange = errors.New("record index out of range")

	// ErrBadNonce means the envelope nonce is not the next expected
	// value for the sender, typically a replayed or stale submission.
	ErrBadNonce = errors.New("bad submission nonce")

	// ErrInvalidRole means a grant names an unknown role.
	ErrInvalidRole = errors.New("invalid role")
)
