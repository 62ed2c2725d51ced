package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server"
	"github.com/vinledger/vinledger/pkg/server/store"
)

// RolesResponse lists the capabilities an address currently holds.
// Owner appears only when the query names a VIN the address owns.
type RolesResponse struct {
	Address string   `json:"address"`
	Roles   []string `json:"roles"`
}

// RegisterRolesEndpoints registers the role resolution endpoint. The
// result is advisory for clients; the ledger re-checks on every write.
func RegisterRolesEndpoints(s *server.Server) {
	s.Router.HandleFunc("/roles/{address}", handleResolveRoles(s)).Methods("GET")
}

func handleResolveRoles(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := mux.Vars(r)["address"]
		if !model.IsAddress(address) {
			respondWithError(w, http.StatusUnprocessableEntity, "invalid_address", store.ErrInvalidAddress.Error())
			return
		}

		held, err := s.Roles.RolesOf(address)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		roles := make([]string, 0, len(held)+1)
		for _, role := range held {
			roles = append(roles, string(role))
		}

		// Owner is derived from the ledger, per VIN, never stored
		if vin := r.URL.Query().Get("vin"); vin != "" {
			owner, err := s.Ledger.CurrentOwner(vin)
			switch {
			case err == nil:
				if owner == model.NormalizeAddress(address) {
					roles = append(roles, "owner")
				}
			case errors.Is(err, store.ErrNotRegistered):
				// Unregistered VIN simply confers no ownership
			default:
				respondStoreError(w, err)
				return
			}
		}

		respondJSON(w, http.StatusOK, RolesResponse{Address: model.NormalizeAddress(address), Roles: roles})
	}
}
