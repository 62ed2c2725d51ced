package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextNonce(t *testing.T) {
	srv, stores := newMemoryServer(t)
	id := newIdentity(t)

	w := doGet(t, srv.Router, "/accounts/"+id.address+"/nonce")
	require.Equal(t, http.StatusOK, w.Code)

	var resp NonceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(0), resp.Nonce)

	require.NoError(t, stores.Accounts.ConsumeNonce(id.address, 0))

	w = doGet(t, srv.Router, "/accounts/"+id.address+"/nonce")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.Nonce)
}

func TestNextNonceInvalidAddress(t *testing.T) {
	srv, _ := newMemoryServer(t)

	w := doGet(t, srv.Router, "/accounts/0x123/nonce")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_address", decodeError(t, w).Error.Code)
}

func TestStatus(t *testing.T) {
	srv, _ := newMemoryServer(t)

	w := doGet(t, srv.Router, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}
