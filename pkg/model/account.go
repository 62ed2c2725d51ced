package model

// Account tracks the next expected nonce for a signing address.
// A row is created lazily on first submission.
type Account struct {
	Address string `gorm:"column:address;primaryKey"`
	Nonce   uint64 `gorm:"column:nonce;not null;default:0"`
}

func (Account) TableName() string {
	return "accounts"
}
