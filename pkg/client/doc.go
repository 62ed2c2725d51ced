// Package client is the caller-side pipeline for the vehicle history
// ledger: advisory role resolution, key custody, envelope signing,
// submission, and history reconstruction over the backend HTTP API.
//
// The pipeline is strictly read-through: every mutation fetches a
// fresh nonce, and successful mutations re-read the VIN's history
// from the backend rather than patching any local view. Role answers
// from the directory are advisory only; the ledger re-checks every
// write authoritatively.
package client
