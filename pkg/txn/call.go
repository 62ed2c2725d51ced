package txn

import (
	"encoding/json"
	"fmt"
)

// Method names the ledger operation a call invokes. The names are part
// of the wire format.
type Method string

const (
	MethodRegisterVehicle   Method = "registerVehicle"
	MethodTransferOwnership Method = "transferOwnership"
	MethodAddServiceRecord  Method = "addServiceRecord"
	MethodAddAccidentRecord Method = "addAccidentRecord"
	MethodAddOdometerRecord Method = "addOdometerRecord"
	MethodGrantRole         Method = "grantRole"
)

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	switch m {
	case MethodRegisterVehicle, MethodTransferOwnership,
		MethodAddServiceRecord, MethodAddAccidentRecord,
		MethodAddOdometerRecord, MethodGrantRole:
		return true
	}
	return false
}

// Call is the decoded payload of an envelope's Data field. Only the
// fields a given method uses are populated; the rest stay empty.
type Call struct {
	Method   Method `json:"method"`
	VIN      string `json:"vin,omitempty"`
	Owner    string `json:"owner,omitempty"`
	NewOwner string `json:"newOwner,omitempty"`
	Grantee  string `json:"grantee,omitempty"`
	Role     string `json:"role,omitempty"`
	Payload  string `json:"payload,omitempty"`
}

// Encode produces the canonical byte encoding of the call. Struct field
// order is fixed, so the encoding is deterministic for identical input.
func (c Call) Encode() ([]byte, error) {
	if !c.Method.Valid() {
		return nil, fmt.Errorf("unknown method %q", c.Method)
	}
	return json.Marshal(c)
}

// DecodeCall parses encoded call data.
func DecodeCall(data []byte) (Call, error) {
	var call Call
	if err := json.Unmarshal(data, &call); err != nil {
		return Call{}, fmt.Errorf("malformed call data: %w", err)
	}
	if !call.Method.Valid() {
		return Call{}, fmt.Errorf("unknown method %q", call.Method)
	}
	return call, nil
}
