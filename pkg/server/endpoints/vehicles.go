package endpoints

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vinledger/vinledger/pkg/audit"
	"github.com/vinledger/vinledger/pkg/server"
)

// HistoryLengthResponse reports how many records a VIN holds.
type HistoryLengthResponse struct {
	VIN    string `json:"vin"`
	Length int    `json:"length"`
}

// OwnerResponse reports the current owner of a registered VIN.
type OwnerResponse struct {
	VIN   string `json:"vin"`
	Owner string `json:"owner"`
}

// RegisterVehiclesEndpoints registers the read side of the ledger:
// the length-then-indexed-fetch history protocol and the owner query.
func RegisterVehiclesEndpoints(s *server.Server) {
	s.Router.HandleFunc("/vehicles/{vin}/records", handleHistoryLength(s)).Methods("GET")
	s.Router.HandleFunc("/vehicles/{vin}/records/{index}", handleGetRecord(s)).Methods("GET")
	s.Router.HandleFunc("/vehicles/{vin}/owner", handleCurrentOwner(s)).Methods("GET")
}

func vinFromRequest(r *http.Request) (string, error) {
	return url.PathUnescape(mux.Vars(r)["vin"])
}

func handleHistoryLength(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vin, err := vinFromRequest(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "bad_vin", err.Error())
			return
		}

		length, err := s.Ledger.HistoryLength(vin)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, HistoryLengthResponse{VIN: vin, Length: length})
	}
}

func handleGetRecord(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vin, err := vinFromRequest(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "bad_vin", err.Error())
			return
		}

		indexStr := mux.Vars(r)["index"]
		index, err := strconv.Atoi(indexStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "bad_index", "record index must be an integer")
			return
		}

		record, err := s.Ledger.GetRecord(vin, index)
		if err != nil {
			audit.Log(audit.FetchEvent{
				ClientIP:     getClientIP(s, r),
				VIN:          vin,
				Index:        indexStr,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondStoreError(w, err)
			return
		}

		audit.Log(audit.FetchEvent{
			ClientIP: getClientIP(s, r),
			VIN:      vin,
			Index:    indexStr,
			Success:  true,
		})
		respondJSON(w, http.StatusOK, record)
	}
}

func handleCurrentOwner(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vin, err := vinFromRequest(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "bad_vin", err.Error())
			return
		}

		owner, err := s.Ledger.CurrentOwner(vin)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, OwnerResponse{VIN: vin, Owner: owner})
	}
}
