package txn

import (
	"context"
	"errors"
	"fmt"

	"github.com/vinledger/vinledger/pkg/keys"
)

// Gas defaults applied when the caller does not override them.
const (
	DefaultGasLimit = 300_000
	DefaultGasPrice = 2_000_000_000 // 2 gwei, in wei
)

// ErrMissingTarget means no ledger deployment address could be resolved
// for the selected network.
var ErrMissingTarget = errors.New("cannot determine ledger target address")

// NonceSource supplies the next submission nonce for an address. The
// nonce must be fetched fresh for every signing call; reusing a cached
// value risks a duplicate-submission rejection.
type NonceSource interface {
	Nonce(ctx context.Context, address string) (uint64, error)
}

// Signer builds and signs envelopes. It holds no key material of its
// own; the key is passed in per call and its lifetime stays with the
// caller.
type Signer struct {
	nonces   NonceSource
	gasLimit uint64
	gasPrice uint64
}

func NewSigner(nonces NonceSource, gasLimit, gasPrice uint64) *Signer {
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}
	if gasPrice == 0 {
		gasPrice = DefaultGasPrice
	}
	return &Signer{nonces: nonces, gasLimit: gasLimit, gasPrice: gasPrice}
}

// BuildAndSign assembles an envelope for target carrying call and signs
// it with key. The key is not retained; the caller destroys it.
func (s *Signer) BuildAndSign(ctx context.Context, key *keys.Key, target string, call Call) (*Envelope, error) {
	if target == "" {
		return nil, ErrMissingTarget
	}

	from, err := key.Address()
	if err != nil {
		return nil, err
	}

	nonce, err := s.nonces.Nonce(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("fetching nonce: %w", err)
	}

	data, err := call.Encode()
	if err != nil {
		return nil, err
	}

	envelope := &Envelope{
		From:     from,
		To:       target,
		Nonce:    nonce,
		GasLimit: s.gasLimit,
		GasPrice: s.gasPrice,
		Data:     data,
	}

	body, err := envelope.SigningBytes()
	if err != nil {
		return nil, err
	}

	envelope.Signature, err = key.Sign(body)
	if err != nil {
		return nil, err
	}
	envelope.PublicKey, err = key.PublicDER()
	if err != nil {
		return nil, err
	}

	return envelope, nil
}
