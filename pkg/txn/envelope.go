package txn

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/vinledger/vinledger/pkg/keys"
	"github.com/vinledger/vinledger/pkg/model"
)

// Envelope is a signed, ready-to-submit transaction. Data carries the
// encoded Call; PublicKey lets the backend check the signature and
// derive the sender address without any prior key exchange.
type Envelope struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Nonce     uint64 `json:"nonce"`
	GasLimit  uint64 `json:"gasLimit"`
	GasPrice  uint64 `json:"gasPrice"`
	Data      []byte `json:"data"`
	PublicKey []byte `json:"publicKey"`
	Signature []byte `json:"signature"`
}

// unsignedEnvelope is the byte layout the signature covers.
type unsignedEnvelope struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Nonce    uint64 `json:"nonce"`
	GasLimit uint64 `json:"gasLimit"`
	GasPrice uint64 `json:"gasPrice"`
	Data     []byte `json:"data"`
}

// SigningBytes returns the canonical encoding of the unsigned fields.
func (e Envelope) SigningBytes() ([]byte, error) {
	return json.Marshal(unsignedEnvelope{
		From:     e.From,
		To:       e.To,
		Nonce:    e.Nonce,
		GasLimit: e.GasLimit,
		GasPrice: e.GasPrice,
		Data:     e.Data,
	})
}

// Hash identifies the envelope: "0x" plus hex SHA-256 over the signed body.
func (e Envelope) Hash() (string, error) {
	body, err := e.SigningBytes()
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(body)
	return "0x" + hex.EncodeToString(digest[:]), nil
}

// Verify checks that the signature covers the unsigned fields and that
// the embedded public key derives exactly the From address.
func (e Envelope) Verify() error {
	if !model.IsAddress(e.From) {
		return errors.New("envelope sender is not a well-formed address")
	}
	body, err := e.SigningBytes()
	if err != nil {
		return err
	}
	if err := keys.Verify(e.PublicKey, body, e.Signature); err != nil {
		return err
	}
	derived := keys.AddressOfPublic(e.PublicKey)
	if model.NormalizeAddress(derived) != model.NormalizeAddress(e.From) {
		return errors.New("envelope sender does not match signing key")
	}
	return nil
}
