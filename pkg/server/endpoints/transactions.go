package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/vinledger/vinledger/pkg/audit"
	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server"
	"github.com/vinledger/vinledger/pkg/txn"
)

// RegisterTransactionsEndpoint registers the signed-envelope submission
// endpoint. All ledger mutations arrive here; the handler is the
// authoritative gate regardless of any client-side role check.
func RegisterTransactionsEndpoint(s *server.Server) {
	s.Router.HandleFunc("/transactions", handleSubmit(s)).Methods("POST")
}

func handleSubmit(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(s, r)

		var envelope txn.Envelope
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed_envelope", "cannot parse envelope")
			return
		}

		if err := envelope.Verify(); err != nil {
			respondWithError(w, http.StatusUnauthorized, "bad_signature", err.Error())
			return
		}

		call, err := txn.DecodeCall(envelope.Data)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed_call", err.Error())
			return
		}

		// Nonce is consumed before dispatch; a replayed envelope dies
		// here without touching the ledger.
		if err := s.Accounts.ConsumeNonce(envelope.From, envelope.Nonce); err != nil {
			respondStoreError(w, err)
			return
		}

		caller := model.NormalizeAddress(envelope.From)
		record, err := dispatchCall(s, call, caller)

		if call.Method == txn.MethodGrantRole {
			audit.Log(audit.GrantEvent{
				Caller:       caller,
				ClientIP:     clientIP,
				Grantee:      call.Grantee,
				Role:         call.Role,
				Success:      err == nil,
				ErrorMessage: errMessage(err),
			})
		} else {
			event := audit.AppendEvent{
				Caller:       caller,
				ClientIP:     clientIP,
				VIN:          call.VIN,
				Operation:    string(call.Method),
				Success:      err == nil,
				ErrorMessage: errMessage(err),
			}
			if record != nil {
				event.Index = record.Idx
			}
			audit.Log(event)
		}

		if err != nil {
			respondStoreError(w, err)
			return
		}

		hash, err := envelope.Hash()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "internal", "internal server error")
			return
		}

		receipt := txn.Receipt{
			ID:     uuid.NewString(),
			Hash:   hash,
			Status: txn.StatusOK,
		}
		if record != nil {
			receipt.Index = record.Idx
		}
		respondJSON(w, http.StatusOK, receipt)
	}
}

// dispatchCall routes a decoded call to the ledger store. The returned
// record is nil for grantRole.
func dispatchCall(s *server.Server, call txn.Call, caller string) (*model.VehicleRecord, error) {
	switch call.Method {
	case txn.MethodRegisterVehicle:
		return s.Ledger.RegisterVehicle(call.VIN, call.Owner, call.Payload, caller)
	case txn.MethodTransferOwnership:
		return s.Ledger.TransferOwnership(call.VIN, call.NewOwner, call.Payload, caller)
	case txn.MethodAddServiceRecord:
		return s.Ledger.AppendRecord(call.VIN, model.Service, call.Payload, caller)
	case txn.MethodAddAccidentRecord:
		return s.Ledger.AppendRecord(call.VIN, model.Accident, call.Payload, caller)
	case txn.MethodAddOdometerRecord:
		return s.Ledger.AppendRecord(call.VIN, model.Odometer, call.Payload, caller)
	case txn.MethodGrantRole:
		return nil, s.Roles.GrantRole(call.Grantee, model.Role(call.Role), caller)
	}
	// Unreachable: DecodeCall already rejected unknown methods
	return nil, nil
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
