package model

import "time"

// Vehicle tracks the derived ownership state for a registered VIN.
// A row exists only after a successful Registration append.
type Vehicle struct {
	VIN          string    `gorm:"column:vin;primaryKey"`
	CurrentOwner string    `gorm:"column:current_owner;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
