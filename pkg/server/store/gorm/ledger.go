package gorm

import (
	"time"

	"gorm.io/gorm"

	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server/store"
)

// Ensure LedgerStore implements store.LedgerStore
var _ store.LedgerStore = (*LedgerStore)(nil)

// LedgerStore implements store.LedgerStore using GORM. Every mutation
// runs in a transaction so the record append and any derived state
// update land together or not at all.
type LedgerStore struct {
	db    *gorm.DB
	roles *RolesStore
	now   func() time.Time
}

// NewLedgerStore creates a new LedgerStore
func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db, roles: NewRolesStore(db), now: time.Now}
}

// RegisterVehicle appends the Registration record for a new VIN.
func (s *LedgerStore) RegisterVehicle(vin, initialOwner, payload, caller string) (*model.VehicleRecord, error) {
	if vin == "" {
		return nil, store.ErrEmptyVIN
	}
	if !model.IsAddress(initialOwner) {
		return nil, store.ErrInvalidAddress
	}

	var record *model.VehicleRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		admin, err := hasRole(tx, caller, model.RoleAdmin)
		if err != nil {
			return err
		}
		if !admin {
			return store.ErrUnauthorized
		}

		var count int64
		if err := tx.Model(&model.VehicleRecord{}).Where("vin = ?", vin).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrAlreadyRegistered
		}

		if err := tx.Create(&model.Vehicle{
			VIN:          vin,
			CurrentOwner: model.NormalizeAddress(initialOwner),
		}).Error; err != nil {
			return err
		}

		record, err = appendRecord(tx, vin, model.Registration, payload, caller, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// TransferOwnership appends a Transfer record and moves CurrentOwner.
func (s *LedgerStore) TransferOwnership(vin, newOwner, payload, caller string) (*model.VehicleRecord, error) {
	if vin == "" {
		return nil, store.ErrEmptyVIN
	}
	if !model.IsAddress(newOwner) {
		return nil, store.ErrInvalidAddress
	}

	var record *model.VehicleRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var vehicle model.Vehicle
		if err := tx.Where("vin = ?", vin).First(&vehicle).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return store.ErrNotRegistered
			}
			return err
		}

		if vehicle.CurrentOwner != model.NormalizeAddress(caller) {
			return store.ErrUnauthorized
		}

		if err := tx.Model(&model.Vehicle{}).Where("vin = ?", vin).
			Update("current_owner", model.NormalizeAddress(newOwner)).Error; err != nil {
			return err
		}

		var err error
		record, err = appendRecord(tx, vin, model.Transfer, payload, caller, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// AppendRecord appends a Service, Accident, or Odometer record.
func (s *LedgerStore) AppendRecord(vin string, recordType model.RecordType, payload, caller string) (*model.VehicleRecord, error) {
	if vin == "" {
		return nil, store.ErrEmptyVIN
	}

	required, err := store.RoleForRecordType(recordType)
	if err != nil {
		return nil, err
	}

	var record *model.VehicleRecord
	err = s.db.Transaction(func(tx *gorm.DB) error {
		allowed, err := hasRole(tx, caller, required)
		if err != nil {
			return err
		}
		if !allowed {
			return store.ErrUnauthorized
		}

		var count int64
		if err := tx.Model(&model.VehicleRecord{}).Where("vin = ?", vin).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotRegistered
		}

		record, err = appendRecord(tx, vin, recordType, payload, caller, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// HistoryLength returns the record count for a VIN, 0 when unregistered.
func (s *LedgerStore) HistoryLength(vin string) (int, error) {
	var count int64
	if err := s.db.Model(&model.VehicleRecord{}).Where("vin = ?", vin).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// GetRecord returns the record at index.
func (s *LedgerStore) GetRecord(vin string, index int) (*model.VehicleRecord, error) {
	if index < 0 {
		return nil, store.ErrOutOfRange
	}
	var record model.VehicleRecord
	tx := s.db.Where("vin = ? AND idx = ?", vin, index).First(&record)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrOutOfRange
		}
		return nil, tx.Error
	}
	return &record, nil
}

// CurrentOwner returns the owner address for a registered VIN.
func (s *LedgerStore) CurrentOwner(vin string) (string, error) {
	var vehicle model.Vehicle
	tx := s.db.Where("vin = ?", vin).First(&vehicle)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return "", store.ErrNotRegistered
		}
		return "", tx.Error
	}
	return vehicle.CurrentOwner, nil
}

// appendRecord writes the next history entry inside tx. The timestamp
// is clamped to the previous record's so a VIN's history never runs
// backwards even if the wall clock does.
func appendRecord(tx *gorm.DB, vin string, recordType model.RecordType, payload, caller string, now time.Time) (*model.VehicleRecord, error) {
	var last model.VehicleRecord
	idx := 0
	ts := now.Unix()

	err := tx.Where("vin = ?", vin).Order("idx desc").First(&last).Error
	switch err {
	case nil:
		idx = last.Idx + 1
		if last.Timestamp > ts {
			ts = last.Timestamp
		}
	case gorm.ErrRecordNotFound:
	default:
		return nil, err
	}

	record := &model.VehicleRecord{
		VIN:        vin,
		Idx:        idx,
		RecordType: recordType,
		Timestamp:  ts,
		RecordedBy: model.NormalizeAddress(caller),
		Payload:    payload,
	}
	if err := tx.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}
