package endpoints

import (
	"context"
	"testing"

	"github.com/vinledger/vinledger/pkg/audit"
	"github.com/vinledger/vinledger/pkg/keys"
	"github.com/vinledger/vinledger/pkg/server"
	"github.com/vinledger/vinledger/pkg/server/store/memory"
	"github.com/vinledger/vinledger/pkg/txn"
)

const testTarget = "0x00000000000000000000000000000000000000ff"

func init() {
	audit.SetEnabled(false)
}

// newMemoryServer builds a Server over fresh in-memory stores with all
// endpoints registered.
func newMemoryServer(t *testing.T) (*server.Server, *memory.Stores) {
	t.Helper()
	stores := memory.New()
	srv := server.NewServer(stores.Ledger, stores.Roles, stores.Accounts, nil, "127.0.0.1", "0")
	RegisterAll(srv)
	return srv, stores
}

// testIdentity is a generated key plus its derived address.
type testIdentity struct {
	key     *keys.Key
	address string
}

func newIdentity(t *testing.T) testIdentity {
	t.Helper()
	key, err := keys.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	t.Cleanup(key.Destroy)
	address, err := key.Address()
	if err != nil {
		t.Fatalf("failed to derive address: %v", err)
	}
	return testIdentity{key: key, address: address}
}

type storeNonces struct {
	accounts interface {
		NextNonce(address string) (uint64, error)
	}
}

func (s storeNonces) Nonce(ctx context.Context, address string) (uint64, error) {
	return s.accounts.NextNonce(address)
}

// signedEnvelope builds a valid envelope for the given call, fetching
// the nonce straight from the store.
func signedEnvelope(t *testing.T, stores *memory.Stores, id testIdentity, call txn.Call) *txn.Envelope {
	t.Helper()
	signer := txn.NewSigner(storeNonces{accounts: stores.Accounts}, 0, 0)
	envelope, err := signer.BuildAndSign(context.Background(), id.key, testTarget, call)
	if err != nil {
		t.Fatalf("failed to build envelope: %v", err)
	}
	return envelope
}
