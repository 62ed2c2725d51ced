package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server/store"
)

// Ensure the memory stores implement the store interfaces
var (
	_ store.LedgerStore   = (*LedgerStore)(nil)
	_ store.RolesStore    = (*RolesStore)(nil)
	_ store.AccountsStore = (*AccountsStore)(nil)
)

// Stores bundles the three in-memory stores over one shared state.
type Stores struct {
	Ledger   *LedgerStore
	Roles    *RolesStore
	Accounts *AccountsStore
}

// New creates a fresh in-memory backend. Used by the dev server mode
// and hermetic tests; semantics match the GORM implementation.
func New() *Stores {
	state := &state{
		records: map[string][]model.VehicleRecord{},
		owners:  map[string]string{},
		roles:   map[string]map[model.Role]bool{},
		nonces:  map[string]uint64{},
	}
	return &Stores{
		Ledger:   &LedgerStore{state: state, now: time.Now},
		Roles:    &RolesStore{state: state},
		Accounts: &AccountsStore{state: state},
	}
}

type state struct {
	mu      sync.Mutex
	records map[string][]model.VehicleRecord
	owners  map[string]string
	roles   map[string]map[model.Role]bool
	nonces  map[string]uint64
}

func (s *state) hasRole(address string, role model.Role) bool {
	return s.roles[model.NormalizeAddress(address)][role]
}

func (s *state) append(vin string, recordType model.RecordType, payload, caller string, now time.Time) model.VehicleRecord {
	history := s.records[vin]
	ts := now.Unix()
	if n := len(history); n > 0 && history[n-1].Timestamp > ts {
		ts = history[n-1].Timestamp
	}
	record := model.VehicleRecord{
		VIN:        vin,
		Idx:        len(history),
		RecordType: recordType,
		Timestamp:  ts,
		RecordedBy: model.NormalizeAddress(caller),
		Payload:    payload,
	}
	s.records[vin] = append(history, record)
	return record
}

// LedgerStore is the in-memory ledger backend.
type LedgerStore struct {
	state *state
	now   func() time.Time
}

func (s *LedgerStore) RegisterVehicle(vin, initialOwner, payload, caller string) (*model.VehicleRecord, error) {
	if vin == "" {
		return nil, store.ErrEmptyVIN
	}
	if !model.IsAddress(initialOwner) {
		return nil, store.ErrInvalidAddress
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if !s.state.hasRole(caller, model.RoleAdmin) {
		return nil, store.ErrUnauthorized
	}
	if len(s.state.records[vin]) > 0 {
		return nil, store.ErrAlreadyRegistered
	}

	s.state.owners[vin] = model.NormalizeAddress(initialOwner)
	record := s.state.append(vin, model.Registration, payload, caller, s.now())
	return &record, nil
}

func (s *LedgerStore) TransferOwnership(vin, newOwner, payload, caller string) (*model.VehicleRecord, error) {
	if vin == "" {
		return nil, store.ErrEmptyVIN
	}
	if !model.IsAddress(newOwner) {
		return nil, store.ErrInvalidAddress
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	owner, ok := s.state.owners[vin]
	if !ok {
		return nil, store.ErrNotRegistered
	}
	if owner != model.NormalizeAddress(caller) {
		return nil, store.ErrUnauthorized
	}

	s.state.owners[vin] = model.NormalizeAddress(newOwner)
	record := s.state.append(vin, model.Transfer, payload, caller, s.now())
	return &record, nil
}

func (s *LedgerStore) AppendRecord(vin string, recordType model.RecordType, payload, caller string) (*model.VehicleRecord, error) {
	if vin == "" {
		return nil, store.ErrEmptyVIN
	}
	required, err := store.RoleForRecordType(recordType)
	if err != nil {
		return nil, err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if !s.state.hasRole(caller, required) {
		return nil, store.ErrUnauthorized
	}
	if len(s.state.records[vin]) == 0 {
		return nil, store.ErrNotRegistered
	}

	record := s.state.append(vin, recordType, payload, caller, s.now())
	return &record, nil
}

func (s *LedgerStore) HistoryLength(vin string) (int, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return len(s.state.records[vin]), nil
}

func (s *LedgerStore) GetRecord(vin string, index int) (*model.VehicleRecord, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	history := s.state.records[vin]
	if index < 0 || index >= len(history) {
		return nil, store.ErrOutOfRange
	}
	record := history[index]
	return &record, nil
}

func (s *LedgerStore) CurrentOwner(vin string) (string, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	owner, ok := s.state.owners[vin]
	if !ok {
		return "", store.ErrNotRegistered
	}
	return owner, nil
}

// RolesStore is the in-memory role grant backend.
type RolesStore struct {
	state *state
}

func (s *RolesStore) HasRole(address string, role model.Role) (bool, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.hasRole(address, role), nil
}

func (s *RolesStore) RolesOf(address string) ([]model.Role, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	held := s.state.roles[model.NormalizeAddress(address)]
	roles := make([]model.Role, 0, len(held))
	for role := range held {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles, nil
}

func (s *RolesStore) GrantRole(address string, role model.Role, caller string) error {
	if !model.IsAddress(address) {
		return store.ErrInvalidAddress
	}
	if !role.Valid() {
		return store.ErrInvalidRole
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if !s.state.hasRole(caller, model.RoleAdmin) {
		return store.ErrUnauthorized
	}
	s.grant(address, role)
	return nil
}

func (s *RolesStore) BootstrapAdmin(address string) error {
	if !model.IsAddress(address) {
		return store.ErrInvalidAddress
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.grant(address, model.RoleAdmin)
	return nil
}

func (s *RolesStore) grant(address string, role model.Role) {
	address = model.NormalizeAddress(address)
	if s.state.roles[address] == nil {
		s.state.roles[address] = map[model.Role]bool{}
	}
	s.state.roles[address][role] = true
}

// AccountsStore is the in-memory nonce backend.
type AccountsStore struct {
	state *state
}

func (s *AccountsStore) NextNonce(address string) (uint64, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.nonces[model.NormalizeAddress(address)], nil
}

func (s *AccountsStore) ConsumeNonce(address string, nonce uint64) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	address = model.NormalizeAddress(address)
	if s.state.nonces[address] != nonce {
		return store.ErrBadNonce
	}
	s.state.nonces[address]++
	return nil
}
