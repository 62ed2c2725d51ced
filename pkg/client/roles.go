package client

import (
	"context"

	"github.com/vinledger/vinledger/pkg/model"
)

// RoleBackend resolves the roles an address holds, including derived
// VIN ownership when a VIN is given.
type RoleBackend interface {
	Roles(ctx context.Context, address, vin string) ([]string, error)
}

// RoleDirectory answers "may this identity attempt this operation"
// before the signing pipeline runs. The answer is advisory, an
// optimization to avoid a doomed submission; the ledger re-checks
// authoritatively on every write.
type RoleDirectory struct {
	backend RoleBackend
}

func NewRoleDirectory(backend RoleBackend) *RoleDirectory {
	return &RoleDirectory{backend: backend}
}

// Resolve returns the role set for address. When vin is non-empty the
// set includes "owner" if the address currently owns that VIN.
func (d *RoleDirectory) Resolve(ctx context.Context, address, vin string) ([]string, error) {
	if !model.IsAddress(address) {
		return nil, ErrInvalidAddress
	}
	return d.backend.Roles(ctx, address, vin)
}

// Check reports whether address holds the named role. A backend
// failure reads as "unknown, let the submission decide" rather than
// blocking the caller, so errors only surface when nothing can be
// resolved at all.
func (d *RoleDirectory) Check(ctx context.Context, address, vin, role string) (bool, error) {
	roles, err := d.Resolve(ctx, address, vin)
	if err != nil {
		return false, err
	}
	for _, held := range roles {
		if held == role {
			return true, nil
		}
	}
	return false, nil
}
