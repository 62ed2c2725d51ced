package gorm

import (
	"gorm.io/gorm"

	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server/store"
)

// Ensure RolesStore implements store.RolesStore
var _ store.RolesStore = (*RolesStore)(nil)

// RolesStore implements store.RolesStore using GORM
type RolesStore struct {
	db *gorm.DB
}

// NewRolesStore creates a new RolesStore
func NewRolesStore(db *gorm.DB) *RolesStore {
	return &RolesStore{db: db}
}

// HasRole reports whether address holds role.
func (s *RolesStore) HasRole(address string, role model.Role) (bool, error) {
	return hasRole(s.db, address, role)
}

// RolesOf returns the static roles held by address.
func (s *RolesStore) RolesOf(address string) ([]model.Role, error) {
	type roleRow struct {
		Role model.Role `gorm:"column:role"`
	}
	var rows []roleRow
	err := s.db.Raw(
		`SELECT role FROM role_grants WHERE address = ? ORDER BY role`,
		model.NormalizeAddress(address),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	roles := make([]model.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.Role)
	}
	return roles, nil
}

// GrantRole grants role to address. Only admins may grant; granting an
// already-held role is a no-op.
func (s *RolesStore) GrantRole(address string, role model.Role, caller string) error {
	if !model.IsAddress(address) {
		return store.ErrInvalidAddress
	}
	if !role.Valid() {
		return store.ErrInvalidRole
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		admin, err := hasRole(tx, caller, model.RoleAdmin)
		if err != nil {
			return err
		}
		if !admin {
			return store.ErrUnauthorized
		}

		return tx.Exec(`
			INSERT INTO role_grants (address, role, granted_by, created_at)
			VALUES (?, ?, ?, NOW())
			ON CONFLICT DO NOTHING
		`, model.NormalizeAddress(address), role, model.NormalizeAddress(caller)).Error
	})
}

// BootstrapAdmin grants admin directly. Setup tooling only.
func (s *RolesStore) BootstrapAdmin(address string) error {
	if !model.IsAddress(address) {
		return store.ErrInvalidAddress
	}
	return s.db.Exec(`
		INSERT INTO role_grants (address, role, granted_by, created_at)
		VALUES (?, ?, 'bootstrap', NOW())
		ON CONFLICT DO NOTHING
	`, model.NormalizeAddress(address), model.RoleAdmin).Error
}

func hasRole(db *gorm.DB, address string, role model.Role) (bool, error) {
	var exists bool
	err := db.Raw(
		`SELECT EXISTS(SELECT 1 FROM role_grants WHERE address = ? AND role = ?)`,
		model.NormalizeAddress(address), role,
	).Scan(&exists).Error
	return exists, err
}
