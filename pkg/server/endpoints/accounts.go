package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server"
	"github.com/vinledger/vinledger/pkg/server/store"
)

// NonceResponse carries the next expected submission nonce for an
// address. Signers must fetch this fresh before every envelope.
type NonceResponse struct {
	Address string `json:"address"`
	Nonce   uint64 `json:"nonce"`
}

// RegisterAccountsEndpoints registers the nonce query endpoint.
func RegisterAccountsEndpoints(s *server.Server) {
	s.Router.HandleFunc("/accounts/{address}/nonce", handleNextNonce(s)).Methods("GET")
}

func handleNextNonce(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := mux.Vars(r)["address"]
		if !model.IsAddress(address) {
			respondWithError(w, http.StatusUnprocessableEntity, "invalid_address", store.ErrInvalidAddress.Error())
			return
		}

		nonce, err := s.Accounts.NextNonce(address)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, NonceResponse{Address: model.NormalizeAddress(address), Nonce: nonce})
	}
}
