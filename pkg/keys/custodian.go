package keys

import (
	"context"
	"errors"
	"strings"
)

// ErrCancelled means the caller declined to provide key material.
// It is a neutral outcome, not a failure, and callers must not render
// it as an error message.
var ErrCancelled = errors.New("key entry cancelled")

// PromptFunc obtains raw key material from the caller. Returning an
// empty string declines the prompt.
type PromptFunc func(ctx context.Context) (string, error)

// Custodian acquires a private key for exactly one signing operation.
// It never logs or persists the material; the returned Key must be
// destroyed by the caller when signing completes.
type Custodian struct {
	prompt PromptFunc
}

func NewCustodian(prompt PromptFunc) *Custodian {
	return &Custodian{prompt: prompt}
}

// Acquire runs the prompt and parses the result. Declining the prompt
// or cancelling the context yields ErrCancelled; malformed material is
// an ordinary error so the two are distinguishable.
func (c *Custodian) Acquire(ctx context.Context) (*Key, error) {
	type promptResult struct {
		material string
		err      error
	}

	results := make(chan promptResult, 1)
	go func() {
		material, err := c.prompt(ctx)
		results <- promptResult{material: material, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ErrCancelled
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		material := strings.TrimSpace(res.material)
		if material == "" {
			return nil, ErrCancelled
		}
		return ParseKey(material)
	}
}
