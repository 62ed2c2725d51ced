// Package keys implements signing-key custody for the ledger client.
//
// A Key wraps an ECDSA P-256 private key. Identity addresses are derived
// from the public key, so holding a key is the only credential. The
// Custodian acquires a key from the caller for exactly one signing
// operation; the material lives in memory only for the duration of the
// call and is erased with Destroy on every exit path.
package keys
