package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server/store"
)

// MockLedgerStore implements store.LedgerStore for testing using testify/mock
type MockLedgerStore struct {
	mock.Mock
}

var _ store.LedgerStore = (*MockLedgerStore)(nil)

func (m *MockLedgerStore) RegisterVehicle(vin, initialOwner, payload, caller string) (*model.VehicleRecord, error) {
	args := m.Called(vin, initialOwner, payload, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VehicleRecord), args.Error(1)
}

func (m *MockLedgerStore) TransferOwnership(vin, newOwner, payload, caller string) (*model.VehicleRecord, error) {
	args := m.Called(vin, newOwner, payload, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VehicleRecord), args.Error(1)
}

func (m *MockLedgerStore) AppendRecord(vin string, recordType model.RecordType, payload, caller string) (*model.VehicleRecord, error) {
	args := m.Called(vin, recordType, payload, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VehicleRecord), args.Error(1)
}

func (m *MockLedgerStore) HistoryLength(vin string) (int, error) {
	args := m.Called(vin)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerStore) GetRecord(vin string, index int) (*model.VehicleRecord, error) {
	args := m.Called(vin, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VehicleRecord), args.Error(1)
}

func (m *MockLedgerStore) CurrentOwner(vin string) (string, error) {
	args := m.Called(vin)
	return args.String(0), args.Error(1)
}

// MockAccountsStore implements store.AccountsStore for testing
type MockAccountsStore struct {
	mock.Mock
}

var _ store.AccountsStore = (*MockAccountsStore)(nil)

func (m *MockAccountsStore) NextNonce(address string) (uint64, error) {
	args := m.Called(address)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockAccountsStore) ConsumeNonce(address string, nonce uint64) error {
	args := m.Called(address, nonce)
	return args.Error(0)
}
