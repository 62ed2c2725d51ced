package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinledger/vinledger/pkg/model"
)

func TestResolveRoles(t *testing.T) {
	srv, stores := newMemoryServer(t)
	admin := newIdentity(t)
	mechanic := newIdentity(t)
	require.NoError(t, stores.Roles.BootstrapAdmin(admin.address))
	require.NoError(t, stores.Roles.GrantRole(mechanic.address, model.RoleService, admin.address))

	w := doGet(t, srv.Router, "/roles/"+mechanic.address)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RolesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, mechanic.address, resp.Address)
	assert.Equal(t, []string{"service"}, resp.Roles)
}

func TestResolveRolesNoneHeld(t *testing.T) {
	srv, _ := newMemoryServer(t)
	nobody := newIdentity(t)

	w := doGet(t, srv.Router, "/roles/"+nobody.address)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RolesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Roles)
}

func TestResolveRolesWithOwnership(t *testing.T) {
	srv, stores := newMemoryServer(t)
	admin := newIdentity(t)
	owner := newIdentity(t)
	require.NoError(t, stores.Roles.BootstrapAdmin(admin.address))
	_, err := stores.Ledger.RegisterVehicle("VIN1", owner.address, "", admin.address)
	require.NoError(t, err)

	w := doGet(t, srv.Router, "/roles/"+owner.address+"?vin=VIN1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp RolesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"owner"}, resp.Roles)

	// Same address against a different VIN confers nothing
	w = doGet(t, srv.Router, "/roles/"+owner.address+"?vin=OTHER")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Roles)

	// The admin is not the owner
	w = doGet(t, srv.Router, "/roles/"+admin.address+"?vin=VIN1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"admin"}, resp.Roles)
}

func TestResolveRolesInvalidAddress(t *testing.T) {
	srv, _ := newMemoryServer(t)

	w := doGet(t, srv.Router, "/roles/not-an-address")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_address", decodeError(t, w).Error.Code)
}
