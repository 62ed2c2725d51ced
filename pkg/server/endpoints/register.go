package endpoints

import "github.com/vinledger/vinledger/pkg/server"

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterTransactionsEndpoint(srv)
	RegisterVehiclesEndpoints(srv)
	RegisterRolesEndpoints(srv)
	RegisterAccountsEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
