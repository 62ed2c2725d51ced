package client

import (
	"context"
	"fmt"

	"github.com/vinledger/vinledger/pkg/config"
	"github.com/vinledger/vinledger/pkg/keys"
	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/txn"
)

// Client is the caller-side facade over the full pipeline: advisory
// role resolution, key custody, signing, submission and history
// re-read. One Client per backend endpoint; safe for sequential use.
type Client struct {
	channel   SubmissionChannel
	reader    *HistoryReader
	directory *RoleDirectory
	custodian *keys.Custodian
	signer    *txn.Signer
	target    string
}

// MutationResult is what a successful ledger mutation hands back: the
// backend's receipt plus the VIN's freshly re-read history. The
// history is fetched read-through after the receipt arrives, never
// assembled from local state.
type MutationResult struct {
	Receipt *txn.Receipt
	History []model.VehicleRecord
}

// New wires a Client from configuration. The target deployment
// address is resolved from the network map at call time, not here, so
// a config reload takes effect without rebuilding the client.
func New(cfg *config.LedgerConfig, custodian *keys.Custodian) *Client {
	channel := NewHTTPChannel(cfg.Endpoint)
	return &Client{
		channel:   channel,
		reader:    NewHistoryReader(channel, cfg.HistoryRetries),
		directory: NewRoleDirectory(channel),
		custodian: custodian,
		signer:    txn.NewSigner(channel, cfg.GasLimit, cfg.GasPrice),
		target:    cfg.TargetAddress(),
	}
}

// newWith wires a Client from explicit parts, for tests.
func newWith(channel *HTTPChannel, custodian *keys.Custodian, target string, retries int) *Client {
	return &Client{
		channel:   channel,
		reader:    NewHistoryReader(channel, retries),
		directory: NewRoleDirectory(channel),
		custodian: custodian,
		signer:    txn.NewSigner(channel, 0, 0),
		target:    target,
	}
}

// RegisterVehicle opens a VIN's history with a Registration record.
// The caller's key must belong to an admin.
func (c *Client) RegisterVehicle(ctx context.Context, vin, initialOwner, payload string) (*MutationResult, error) {
	if vin == "" {
		return nil, ErrEmptyVIN
	}
	if !model.IsAddress(initialOwner) {
		return nil, ErrInvalidAddress
	}
	return c.mutate(ctx, "admin", txn.Call{
		Method:  txn.MethodRegisterVehicle,
		VIN:     vin,
		Owner:   model.NormalizeAddress(initialOwner),
		Payload: payload,
	})
}

// TransferOwnership appends a Transfer record. Only the current owner
// may transfer; an Unauthorized rejection for a caller who was the
// owner moments ago means a concurrent transfer won the race.
func (c *Client) TransferOwnership(ctx context.Context, vin, newOwner, payload string) (*MutationResult, error) {
	if vin == "" {
		return nil, ErrEmptyVIN
	}
	if !model.IsAddress(newOwner) {
		return nil, ErrInvalidAddress
	}
	return c.mutate(ctx, "owner", txn.Call{
		Method:   txn.MethodTransferOwnership,
		VIN:      vin,
		NewOwner: model.NormalizeAddress(newOwner),
		Payload:  payload,
	})
}

// AddServiceRecord appends a Service record; requires the service role.
func (c *Client) AddServiceRecord(ctx context.Context, vin, payload string) (*MutationResult, error) {
	if vin == "" {
		return nil, ErrEmptyVIN
	}
	return c.mutate(ctx, "service", txn.Call{
		Method:  txn.MethodAddServiceRecord,
		VIN:     vin,
		Payload: payload,
	})
}

// AddAccidentRecord appends an Accident record; requires the insurer role.
func (c *Client) AddAccidentRecord(ctx context.Context, vin, payload string) (*MutationResult, error) {
	if vin == "" {
		return nil, ErrEmptyVIN
	}
	return c.mutate(ctx, "insurer", txn.Call{
		Method:  txn.MethodAddAccidentRecord,
		VIN:     vin,
		Payload: payload,
	})
}

// AddOdometerRecord appends an Odometer record; requires the service role.
func (c *Client) AddOdometerRecord(ctx context.Context, vin, payload string) (*MutationResult, error) {
	if vin == "" {
		return nil, ErrEmptyVIN
	}
	return c.mutate(ctx, "service", txn.Call{
		Method:  txn.MethodAddOdometerRecord,
		VIN:     vin,
		Payload: payload,
	})
}

// GrantRole submits an admin-signed role grant for grantee. Granting
// an already-held role succeeds as a no-op.
func (c *Client) GrantRole(ctx context.Context, grantee, role string) (*txn.Receipt, error) {
	if !model.IsAddress(grantee) {
		return nil, ErrInvalidAddress
	}
	if !model.Role(role).Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	receipt, err := c.submit(ctx, "admin", txn.Call{
		Method:  txn.MethodGrantRole,
		Grantee: model.NormalizeAddress(grantee),
		Role:    role,
	})
	return receipt, err
}

// History reconstructs the full ordered record list for vin. An
// unregistered VIN yields an empty slice, not an error.
func (c *Client) History(ctx context.Context, vin string) ([]model.VehicleRecord, error) {
	return c.reader.Read(ctx, vin)
}

// Roles resolves the advisory role set for address, including derived
// ownership of vin when given.
func (c *Client) Roles(ctx context.Context, address, vin string) ([]string, error) {
	return c.directory.Resolve(ctx, address, vin)
}

// mutate runs a VIN-scoped mutation end to end and re-reads the VIN's
// history once the receipt is in hand.
func (c *Client) mutate(ctx context.Context, role string, call txn.Call) (*MutationResult, error) {
	receipt, err := c.submit(ctx, role, call)
	if err != nil {
		return nil, err
	}
	history, err := c.reader.Read(ctx, call.VIN)
	if err != nil {
		// The mutation landed; only the confirmation read failed
		return &MutationResult{Receipt: receipt}, err
	}
	return &MutationResult{Receipt: receipt, History: history}, nil
}

// submit is the shared pipeline tail: acquire key, advisory role
// check, sign, send. The key is destroyed on every exit path, and a
// cancelled acquisition propagates keys.ErrCancelled untouched so
// callers can treat it as a neutral outcome.
func (c *Client) submit(ctx context.Context, role string, call txn.Call) (*txn.Receipt, error) {
	key, err := c.custodian.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	caller, err := key.Address()
	if err != nil {
		return nil, err
	}

	// Advisory check: skip the doomed submission when the directory
	// positively says no. If the directory itself is unreachable the
	// ledger's authoritative check decides.
	allowed, err := c.directory.Check(ctx, caller, call.VIN, role)
	if err == nil && !allowed {
		return nil, ErrUnauthorized
	}

	envelope, err := c.signer.BuildAndSign(ctx, key, c.target, call)
	if err != nil {
		return nil, err
	}

	// On ErrBackendUnavailable delivery is unconfirmed either way;
	// the caller should re-read the history before assuming anything
	return c.channel.Send(ctx, envelope)
}
