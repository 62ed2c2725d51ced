package model

import "fmt"

// RecordType tags a history entry. Ordinal values are persisted and must
// never be renumbered; new types are appended at the end only.
type RecordType int

const (
	Registration RecordType = iota
	Transfer
	Service
	Accident
	Odometer
)

var recordTypeNames = [...]string{
	Registration: "Registration",
	Transfer:     "Transfer",
	Service:      "Service",
	Accident:     "Accident",
	Odometer:     "Odometer",
}

func (t RecordType) String() string {
	if t < 0 || int(t) >= len(recordTypeNames) {
		return fmt.Sprintf("RecordType(%d)", int(t))
	}
	return recordTypeNames[t]
}

// Valid reports whether t is a known record type.
func (t RecordType) Valid() bool {
	return t >= 0 && int(t) < len(recordTypeNames)
}

// ParseRecordType maps a display name back to its ordinal.
func ParseRecordType(name string) (RecordType, error) {
	for i, n := range recordTypeNames {
		if n == name {
			return RecordType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown record type %q", name)
}

// VehicleRecord is one append-only history entry for a VIN.
// Timestamp is assigned by the ledger at append time and is
// non-decreasing within a VIN's history.
type VehicleRecord struct {
	VIN        string     `gorm:"column:vin;primaryKey" json:"vin"`
	Idx        int        `gorm:"column:idx;primaryKey" json:"index"`
	RecordType RecordType `gorm:"column:record_type;not null" json:"recordType"`
	Timestamp  int64      `gorm:"column:recorded_at;not null" json:"timestamp"`
	RecordedBy string     `gorm:"column:recorded_by;not null" json:"recordedBy"`
	Payload    string     `gorm:"column:payload" json:"payload"`
}

func (VehicleRecord) TableName() string {
	return "vehicle_records"
}
