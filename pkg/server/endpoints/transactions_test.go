package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinledger/vinledger/pkg/txn"
)

const testOwner = "0x00000000000000000000000000000000000000aa"

func submitEnvelope(t *testing.T, srv http.Handler, envelope *txn.Envelope) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitRegisterVehicle(t *testing.T) {
	srv, stores := newMemoryServer(t)
	admin := newIdentity(t)
	require.NoError(t, stores.Roles.BootstrapAdmin(admin.address))

	envelope := signedEnvelope(t, stores, admin, txn.Call{
		Method:  txn.MethodRegisterVehicle,
		VIN:     "1HGCM82633A004352",
		Owner:   testOwner,
		Payload: "initial registration",
	})

	w := submitEnvelope(t, srv.Router, envelope)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var receipt txn.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, txn.StatusOK, receipt.Status)
	assert.Equal(t, 0, receipt.Index)
	assert.NotEmpty(t, receipt.ID)
	assert.NotEmpty(t, receipt.Hash)

	length, err := stores.Ledger.HistoryLength("1HGCM82633A004352")
	require.NoError(t, err)
	assert.Equal(t, 1, length)
}

func TestSubmitUnauthorizedRegister(t *testing.T) {
	srv, stores := newMemoryServer(t)
	nobody := newIdentity(t)

	envelope := signedEnvelope(t, stores, nobody, txn.Call{
		Method: txn.MethodRegisterVehicle,
		VIN:    "VIN1",
		Owner:  testOwner,
	})

	w := submitEnvelope(t, srv.Router, envelope)
	require.Equal(t, http.StatusForbidden, w.Code)

	body := decodeError(t, w)
	assert.Equal(t, "unauthorized", body.Error.Code)
	// Reason string is surfaced verbatim
	assert.Equal(t, "caller is not authorized for this operation", body.Error.Message)

	length, err := stores.Ledger.HistoryLength("VIN1")
	require.NoError(t, err)
	assert.Equal(t, 0, length)
}

func TestSubmitTamperedEnvelope(t *testing.T) {
	srv, stores := newMemoryServer(t)
	admin := newIdentity(t)
	require.NoError(t, stores.Roles.BootstrapAdmin(admin.address))

	envelope := signedEnvelope(t, stores, admin, txn.Call{
		Method: txn.MethodRegisterVehicle,
		VIN:    "VIN1",
		Owner:  testOwner,
	})
	envelope.GasLimit++

	w := submitEnvelope(t, srv.Router, envelope)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "bad_signature", decodeError(t, w).Error.Code)
}

func TestSubmitReplayedEnvelope(t *testing.T) {
	srv, stores := newMemoryServer(t)
	admin := newIdentity(t)
	require.NoError(t, stores.Roles.BootstrapAdmin(admin.address))

	envelope := signedEnvelope(t, stores, admin, txn.Call{
		Method: txn.MethodRegisterVehicle,
		VIN:    "VIN1",
		Owner:  testOwner,
	})

	first := submitEnvelope(t, srv.Router, envelope)
	require.Equal(t, http.StatusOK, first.Code)

	// Same envelope again: nonce already consumed
	second := submitEnvelope(t, srv.Router, envelope)
	require.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "bad_nonce", decodeError(t, second).Error.Code)

	length, err := stores.Ledger.HistoryLength("VIN1")
	require.NoError(t, err)
	assert.Equal(t, 1, length)
}

func TestSubmitGrantRole(t *testing.T) {
	srv, stores := newMemoryServer(t)
	admin := newIdentity(t)
	mechanic := newIdentity(t)
	require.NoError(t, stores.Roles.BootstrapAdmin(admin.address))

	envelope := signedEnvelope(t, stores, admin, txn.Call{
		Method:  txn.MethodGrantRole,
		Grantee: mechanic.address,
		Role:    "service",
	})

	w := submitEnvelope(t, srv.Router, envelope)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	held, err := stores.Roles.RolesOf(mechanic.address)
	require.NoError(t, err)
	assert.Len(t, held, 1)
}

func TestSubmitTransferFlow(t *testing.T) {
	srv, stores := newMemoryServer(t)
	admin := newIdentity(t)
	ownerA := newIdentity(t)
	ownerB := newIdentity(t)
	require.NoError(t, stores.Roles.BootstrapAdmin(admin.address))

	register := signedEnvelope(t, stores, admin, txn.Call{
		Method: txn.MethodRegisterVehicle,
		VIN:    "VIN1",
		Owner:  ownerA.address,
	})
	require.Equal(t, http.StatusOK, submitEnvelope(t, srv.Router, register).Code)

	transfer := signedEnvelope(t, stores, ownerA, txn.Call{
		Method:   txn.MethodTransferOwnership,
		VIN:      "VIN1",
		NewOwner: ownerB.address,
		Payload:  "sold",
	})
	w := submitEnvelope(t, srv.Router, transfer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var receipt txn.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, 1, receipt.Index)

	// Stale owner retries: concurrent-transfer race surfaces as unauthorized
	stale := signedEnvelope(t, stores, ownerA, txn.Call{
		Method:   txn.MethodTransferOwnership,
		VIN:      "VIN1",
		NewOwner: ownerA.address,
	})
	w = submitEnvelope(t, srv.Router, stale)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "unauthorized", decodeError(t, w).Error.Code)
}

func TestSubmitMalformedEnvelope(t *testing.T) {
	srv, _ := newMemoryServer(t)

	req := httptest.NewRequest("POST", "/transactions", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
