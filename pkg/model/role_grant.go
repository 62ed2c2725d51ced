package model

import "time"

// Role is a capability grant gating which mutations an address may sign.
// The owner capability is not stored; it is derived per VIN from
// Vehicle.CurrentOwner.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleService Role = "service"
	RoleInsurer Role = "insurer"
)

// Valid reports whether r names a grantable role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleService, RoleInsurer:
		return true
	}
	return false
}

// RoleGrant records a static role held by an address.
type RoleGrant struct {
	Address   string    `gorm:"column:address;primaryKey"`
	Role      Role      `gorm:"column:role;primaryKey"`
	GrantedBy string    `gorm:"column:granted_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RoleGrant) TableName() string {
	return "role_grants"
}
