// Package txn defines the transaction wire format for the ledger: the
// encoded call payload, the signed envelope, submission receipts, and
// the Signer that assembles and signs envelopes with a caller-held key.
package txn
