package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinledger/vinledger/pkg/server"
)

func TestHistoryLengthStoreFailure(t *testing.T) {
	ledger := new(MockLedgerStore)
	ledger.On("HistoryLength", "VIN1").Return(0, errors.New("connection reset"))

	srv := server.NewServer(ledger, nil, nil, nil, "127.0.0.1", "0")
	RegisterVehiclesEndpoints(srv)

	w := doGet(t, srv.Router, "/vehicles/VIN1/records")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// Internal detail must not leak into the response body
	body := decodeError(t, w)
	assert.Equal(t, "internal", body.Error.Code)
	assert.Equal(t, "internal server error", body.Error.Message)
	ledger.AssertExpectations(t)
}

func TestNextNonceStoreFailure(t *testing.T) {
	accounts := new(MockAccountsStore)
	accounts.On("NextNonce", testOwner).Return(uint64(0), errors.New("connection reset"))

	srv := server.NewServer(nil, nil, accounts, nil, "127.0.0.1", "0")
	RegisterAccountsEndpoints(srv)

	w := doGet(t, srv.Router, "/accounts/"+testOwner+"/nonce")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal", decodeError(t, w).Error.Code)
	accounts.AssertExpectations(t)
}
