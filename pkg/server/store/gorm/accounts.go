package gorm

import (
	"gorm.io/gorm"

	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server/store"
)

// Ensure AccountsStore implements store.AccountsStore
var _ store.AccountsStore = (*AccountsStore)(nil)

// AccountsStore implements store.AccountsStore using GORM
type AccountsStore struct {
	db *gorm.DB
}

// NewAccountsStore creates a new AccountsStore
func NewAccountsStore(db *gorm.DB) *AccountsStore {
	return &AccountsStore{db: db}
}

// NextNonce returns the next expected nonce for address, 0 for an
// address never seen before.
func (s *AccountsStore) NextNonce(address string) (uint64, error) {
	var account model.Account
	err := s.db.Where("address = ?", model.NormalizeAddress(address)).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return account.Nonce, nil
}

// ConsumeNonce advances the counter iff nonce matches the next expected
// value. The row lock inside the transaction serializes concurrent
// submissions from the same address.
func (s *AccountsStore) ConsumeNonce(address string, nonce uint64) error {
	address = model.NormalizeAddress(address)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			INSERT INTO accounts (address, nonce) VALUES (?, 0)
			ON CONFLICT DO NOTHING
		`, address).Error; err != nil {
			return err
		}

		var current uint64
		if err := tx.Raw(
			`SELECT nonce FROM accounts WHERE address = ? FOR UPDATE`, address,
		).Scan(&current).Error; err != nil {
			return err
		}

		if current != nonce {
			return store.ErrBadNonce
		}

		return tx.Exec(
			`UPDATE accounts SET nonce = nonce + 1 WHERE address = ?`, address,
		).Error
	})
}
