package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server/endpoints"
	"github.com/vinledger/vinledger/pkg/txn"
)

// SubmissionChannel delivers signed envelopes to the ledger backend.
// Send surfaces backend rejection reasons verbatim via BackendError;
// transport faults come back wrapped in ErrBackendUnavailable.
type SubmissionChannel interface {
	Send(ctx context.Context, envelope *txn.Envelope) (*txn.Receipt, error)
	Nonce(ctx context.Context, address string) (uint64, error)
}

// HistoryBackend is the read side consumed by HistoryReader.
type HistoryBackend interface {
	HistoryLength(ctx context.Context, vin string) (int, error)
	GetRecord(ctx context.Context, vin string, index int) (*model.VehicleRecord, error)
}

// HTTPChannel talks to a vinledger server over its HTTP API. It
// implements SubmissionChannel, HistoryBackend and txn.NonceSource.
type HTTPChannel struct {
	baseURL string
	client  *http.Client
}

var _ SubmissionChannel = (*HTTPChannel)(nil)
var _ HistoryBackend = (*HTTPChannel)(nil)
var _ txn.NonceSource = (*HTTPChannel)(nil)

func NewHTTPChannel(endpoint string) *HTTPChannel {
	return &HTTPChannel{
		baseURL: strings.TrimRight(endpoint, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPChannel) Send(ctx context.Context, envelope *txn.Envelope) (*txn.Receipt, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backendError(resp)
	}

	var receipt txn.Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("%w: malformed receipt: %v", ErrBackendUnavailable, err)
	}
	return &receipt, nil
}

func (c *HTTPChannel) Nonce(ctx context.Context, address string) (uint64, error) {
	var resp endpoints.NonceResponse
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(address)+"/nonce", &resp); err != nil {
		return 0, err
	}
	return resp.Nonce, nil
}

func (c *HTTPChannel) HistoryLength(ctx context.Context, vin string) (int, error) {
	var resp endpoints.HistoryLengthResponse
	if err := c.getJSON(ctx, "/vehicles/"+url.PathEscape(vin)+"/records", &resp); err != nil {
		return 0, err
	}
	return resp.Length, nil
}

func (c *HTTPChannel) GetRecord(ctx context.Context, vin string, index int) (*model.VehicleRecord, error) {
	var record model.VehicleRecord
	path := fmt.Sprintf("/vehicles/%s/records/%d", url.PathEscape(vin), index)
	if err := c.getJSON(ctx, path, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *HTTPChannel) CurrentOwner(ctx context.Context, vin string) (string, error) {
	var resp endpoints.OwnerResponse
	if err := c.getJSON(ctx, "/vehicles/"+url.PathEscape(vin)+"/owner", &resp); err != nil {
		return "", err
	}
	return resp.Owner, nil
}

func (c *HTTPChannel) Roles(ctx context.Context, address, vin string) ([]string, error) {
	path := "/roles/" + url.PathEscape(address)
	if vin != "" {
		path += "?vin=" + url.QueryEscape(vin)
	}
	var resp endpoints.RolesResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Roles, nil
}

func (c *HTTPChannel) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return backendError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// backendError parses the structured error body. An unparseable body
// falls back to the HTTP status text so something is always surfaced.
func backendError(resp *http.Response) error {
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error.Code == "" {
		return &BackendError{
			StatusCode: resp.StatusCode,
			Code:       "unknown",
			Reason:     resp.Status,
		}
	}
	return &BackendError{
		StatusCode: resp.StatusCode,
		Code:       body.Error.Code,
		Reason:     body.Error.Message,
	}
}
