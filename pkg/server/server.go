package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vinledger/vinledger/pkg/config"
	"github.com/vinledger/vinledger/pkg/server/store"
)

// Server wires the HTTP router to the backing stores.
type Server struct {
	Ledger   store.LedgerStore
	Roles    store.RolesStore
	Accounts store.AccountsStore
	Config   *config.LedgerConfig
	Router   *mux.Router
	srv      *http.Server
}

func NewServer(
	ledger store.LedgerStore,
	roles store.RolesStore,
	accounts store.AccountsStore,
	cfg *config.LedgerConfig,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Ledger:   ledger,
		Roles:    roles,
		Accounts: accounts,
		Config:   cfg,
		Router:   router,
		srv:      srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
