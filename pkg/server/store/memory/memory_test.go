package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server/store"
)

const (
	vin      = "1HGCM82633A004352"
	admin    = "0x00000000000000000000000000000000000000d0"
	ownerA   = "0x00000000000000000000000000000000000000aa"
	ownerB   = "0x00000000000000000000000000000000000000bb"
	ownerC   = "0x00000000000000000000000000000000000000cc"
	mechanic = "0x00000000000000000000000000000000000000e1"
	insurer  = "0x00000000000000000000000000000000000000e2"
)

func newStores(t *testing.T) *Stores {
	t.Helper()
	stores := New()
	if err := stores.Roles.BootstrapAdmin(admin); err != nil {
		t.Fatalf("failed to bootstrap admin: %v", err)
	}
	if err := stores.Roles.GrantRole(mechanic, model.RoleService, admin); err != nil {
		t.Fatalf("failed to grant service role: %v", err)
	}
	if err := stores.Roles.GrantRole(insurer, model.RoleInsurer, admin); err != nil {
		t.Fatalf("failed to grant insurer role: %v", err)
	}
	return stores
}

func mustLength(t *testing.T, ledger store.LedgerStore, vin string) int {
	t.Helper()
	n, err := ledger.HistoryLength(vin)
	if err != nil {
		t.Fatalf("history length failed: %v", err)
	}
	return n
}

func TestRegisterTransferScenario(t *testing.T) {
	stores := newStores(t)
	ledger := stores.Ledger

	if n := mustLength(t, ledger, vin); n != 0 {
		t.Fatalf("expected empty history before registration, got %d", n)
	}

	if _, err := ledger.RegisterVehicle(vin, ownerA, "first registration", admin); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if n := mustLength(t, ledger, vin); n != 1 {
		t.Fatalf("expected length 1 after registration, got %d", n)
	}

	rec, err := ledger.GetRecord(vin, 0)
	if err != nil {
		t.Fatalf("get record failed: %v", err)
	}
	if rec.RecordType != model.Registration {
		t.Errorf("index 0 must be Registration, got %s", rec.RecordType)
	}

	if _, err := ledger.TransferOwnership(vin, ownerB, "sold", ownerA); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if n := mustLength(t, ledger, vin); n != 2 {
		t.Fatalf("expected length 2 after transfer, got %d", n)
	}
	owner, err := ledger.CurrentOwner(vin)
	if err != nil {
		t.Fatalf("current owner failed: %v", err)
	}
	if owner != ownerB {
		t.Errorf("expected owner %s, got %s", ownerB, owner)
	}

	// Stale owner loses authorization after the transfer
	if _, err := ledger.TransferOwnership(vin, ownerC, "double sell", ownerA); !errors.Is(err, store.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for stale owner, got %v", err)
	}
	if n := mustLength(t, ledger, vin); n != 2 {
		t.Errorf("failed transfer must append nothing, length %d", n)
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	ledger := newStores(t).Ledger

	if _, err := ledger.RegisterVehicle(vin, ownerA, "", admin); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := ledger.RegisterVehicle(vin, ownerB, "", admin); !errors.Is(err, store.ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}

	// Original registration untouched
	if owner, _ := ledger.CurrentOwner(vin); owner != ownerA {
		t.Errorf("expected owner %s, got %s", ownerA, owner)
	}
	if n := mustLength(t, ledger, vin); n != 1 {
		t.Errorf("expected length 1, got %d", n)
	}
}

func TestRegisterRequiresAdmin(t *testing.T) {
	ledger := newStores(t).Ledger

	if _, err := ledger.RegisterVehicle(vin, ownerA, "", ownerA); !errors.Is(err, store.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if n := mustLength(t, ledger, vin); n != 0 {
		t.Errorf("unauthorized register must append nothing, length %d", n)
	}
}

func TestRegisterValidatesOwnerAddress(t *testing.T) {
	ledger := newStores(t).Ledger

	for _, bad := range []string{"", "0x123", "not-an-address", "0xZZ000000000000000000000000000000000000zz"} {
		if _, err := ledger.RegisterVehicle(vin, bad, "", admin); !errors.Is(err, store.ErrInvalidAddress) {
			t.Errorf("expected ErrInvalidAddress for %q, got %v", bad, err)
		}
	}
}

func TestAppendRecordRoleEnforcement(t *testing.T) {
	stores := newStores(t)
	ledger := stores.Ledger

	if _, err := ledger.RegisterVehicle(vin, ownerA, "", admin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	cases := []struct {
		name       string
		recordType model.RecordType
		caller     string
		wantErr    error
	}{
		{"service by mechanic", model.Service, mechanic, nil},
		{"odometer by mechanic", model.Odometer, mechanic, nil},
		{"accident by insurer", model.Accident, insurer, nil},
		{"service by insurer", model.Service, insurer, store.ErrUnauthorized},
		{"accident by mechanic", model.Accident, mechanic, store.ErrUnauthorized},
		{"odometer by owner", model.Odometer, ownerA, store.ErrUnauthorized},
		{"accident by admin", model.Accident, admin, store.ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := mustLength(t, ledger, vin)
			_, err := ledger.AppendRecord(vin, tc.recordType, "data", tc.caller)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			after := mustLength(t, ledger, vin)
			if tc.wantErr == nil && after != before+1 {
				t.Errorf("expected length %d, got %d", before+1, after)
			}
			if tc.wantErr != nil && after != before {
				t.Errorf("failed append must not change length: %d -> %d", before, after)
			}
		})
	}
}

func TestAppendOnUnregisteredVIN(t *testing.T) {
	ledger := newStores(t).Ledger

	if _, err := ledger.AppendRecord("UNKNOWNVIN", model.Service, "", mechanic); !errors.Is(err, store.ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
	if n := mustLength(t, ledger, "UNKNOWNVIN"); n != 0 {
		t.Errorf("expected length 0, got %d", n)
	}
}

func TestGetRecordOutOfRange(t *testing.T) {
	ledger := newStores(t).Ledger
	if _, err := ledger.RegisterVehicle(vin, ownerA, "", admin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, idx := range []int{1, 2, -1} {
		if _, err := ledger.GetRecord(vin, idx); !errors.Is(err, store.ErrOutOfRange) {
			t.Errorf("expected ErrOutOfRange for index %d, got %v", idx, err)
		}
	}

	// Reads are idempotent
	first, err := ledger.GetRecord(vin, 0)
	if err != nil {
		t.Fatalf("get record failed: %v", err)
	}
	second, err := ledger.GetRecord(vin, 0)
	if err != nil {
		t.Fatalf("get record failed: %v", err)
	}
	if *first != *second {
		t.Errorf("repeated reads differ: %+v != %+v", first, second)
	}
}

func TestTimestampsNonDecreasing(t *testing.T) {
	stores := newStores(t)
	ledger := stores.Ledger

	// Simulate a clock that runs backwards between appends
	clock := time.Unix(1_700_000_000, 0)
	ledger.now = func() time.Time {
		clock = clock.Add(-time.Minute)
		return clock
	}

	if _, err := ledger.RegisterVehicle(vin, ownerA, "", admin); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := ledger.AppendRecord(vin, model.Service, "svc", mechanic); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	n := mustLength(t, ledger, vin)
	var prev int64
	for i := 0; i < n; i++ {
		rec, err := ledger.GetRecord(vin, i)
		if err != nil {
			t.Fatalf("get record failed: %v", err)
		}
		if rec.Idx != i {
			t.Errorf("record %d has index %d", i, rec.Idx)
		}
		if rec.Timestamp < prev {
			t.Errorf("timestamp decreased at index %d: %d < %d", i, rec.Timestamp, prev)
		}
		prev = rec.Timestamp
	}
}

func TestGrantRoleIdempotentAndAdminOnly(t *testing.T) {
	stores := newStores(t)
	roles := stores.Roles

	// Granting an already-held role is a no-op
	if err := roles.GrantRole(mechanic, model.RoleService, admin); err != nil {
		t.Errorf("re-grant should be a no-op, got %v", err)
	}

	if err := roles.GrantRole(ownerA, model.RoleService, ownerB); !errors.Is(err, store.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for non-admin grant, got %v", err)
	}

	if err := roles.GrantRole(ownerA, model.Role("sovereign"), admin); !errors.Is(err, store.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}

	held, err := roles.RolesOf(mechanic)
	if err != nil {
		t.Fatalf("roles of failed: %v", err)
	}
	if len(held) != 1 || held[0] != model.RoleService {
		t.Errorf("expected exactly [service], got %v", held)
	}
}

func TestNonceSequence(t *testing.T) {
	accounts := newStores(t).Accounts

	next, err := accounts.NextNonce(ownerA)
	if err != nil {
		t.Fatalf("next nonce failed: %v", err)
	}
	if next != 0 {
		t.Fatalf("fresh address should start at nonce 0, got %d", next)
	}

	if err := accounts.ConsumeNonce(ownerA, 0); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	// Replay of the same nonce is rejected
	if err := accounts.ConsumeNonce(ownerA, 0); !errors.Is(err, store.ErrBadNonce) {
		t.Errorf("expected ErrBadNonce for replay, got %v", err)
	}
	if next, _ = accounts.NextNonce(ownerA); next != 1 {
		t.Errorf("expected next nonce 1, got %d", next)
	}
}
