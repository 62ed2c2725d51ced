package endpoints

import (
	"net/http"

	"github.com/vinledger/vinledger/pkg/server"
)

// StatusResponse reports server liveness.
type StatusResponse struct {
	Status string `json:"status"`
}

// RegisterStatusEndpoints registers the health endpoint.
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}).Methods("GET")
}
