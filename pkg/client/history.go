package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/vinledger/vinledger/pkg/model"
)

// HistoryReader reconstructs a VIN's full ordered history with the
// length-then-indexed-fetch protocol. A length of zero is a valid
// outcome meaning "no records yet". If any single record cannot be
// fetched the whole reconstruction fails with ErrPartialHistory; a
// truncated list is never returned as complete.
type HistoryReader struct {
	backend HistoryBackend

	// retries is how many extra attempts each record fetch gets.
	// Record reads are idempotent, so transparent retry is safe.
	retries int
}

func NewHistoryReader(backend HistoryBackend, retries int) *HistoryReader {
	if retries < 0 {
		retries = 0
	}
	return &HistoryReader{backend: backend, retries: retries}
}

func (r *HistoryReader) Read(ctx context.Context, vin string) ([]model.VehicleRecord, error) {
	if vin == "" {
		return nil, ErrEmptyVIN
	}

	length, err := r.backend.HistoryLength(ctx, vin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPartialHistory, err)
	}
	if length == 0 {
		return []model.VehicleRecord{}, nil
	}

	records := make([]model.VehicleRecord, length)
	for i := 0; i < length; i++ {
		record, err := r.fetchRecord(ctx, vin, i)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d of %d: %v", ErrPartialHistory, i, length, err)
		}
		records[i] = *record
	}
	return records, nil
}

func (r *HistoryReader) fetchRecord(ctx context.Context, vin string, index int) (*model.VehicleRecord, error) {
	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		record, err := r.backend.GetRecord(ctx, vin, index)
		if err == nil {
			return record, nil
		}
		lastErr = err

		// Only transport hiccups are worth retrying; a structured
		// rejection will not change on a second attempt.
		if !errors.Is(err, ErrBackendUnavailable) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}
