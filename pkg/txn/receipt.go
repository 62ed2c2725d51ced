package txn

// Receipt statuses reported by the backend.
const (
	StatusOK       = "ok"
	StatusReverted = "reverted"
)

// Receipt acknowledges a submitted envelope. On success Index is the
// position of the appended record in the VIN's history; on a revert,
// Reason carries the backend's reason string verbatim.
type Receipt struct {
	ID     string `json:"id"`
	Hash   string `json:"hash"`
	Status string `json:"status"`
	Index  int    `json:"index,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Reverted reports whether the backend rejected the envelope.
func (r Receipt) Reverted() bool {
	return r.Status == StatusReverted
}
