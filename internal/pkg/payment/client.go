// Package payment provides a client for the payment gateway proxy.
// Intents and checkout sessions are created through the backend's gateway
// account; the service never talks to the provider SDK directly.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Gateway errors
var (
	ErrNotConfigured = errors.New("payment gateway not configured")
	ErrDeclined      = errors.New("payment declined")
)

// Client encapsulates HTTP interaction with the payment gateway.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Intent describes a payment intent returned by the gateway.
type Intent struct {
	ID       string `json:"id"`
	Status   string `json:"status"` // requires_action, succeeded, declined
	Amount   int64  `json:"amount"` // cents
	Currency string `json:"currency"`
}

// NewClient creates a gateway client for the given base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type createIntentRequest struct {
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	PaymentMethodID string `json:"paymentMethodId"`
	Description     string `json:"description,omitempty"`
}

// CreateIntent creates and confirms a payment intent for the given amount.
// A declined card surfaces as ErrDeclined, not as a transport error.
func (c *Client) CreateIntent(ctx context.Context, amount int64, paymentMethodID, description string) (*Intent, error) {
	if c == nil || c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	payload := createIntentRequest{
		Amount:          amount,
		Currency:        "usd",
		PaymentMethodID: paymentMethodID,
		Description:     description,
	}

	var intent Intent
	if err := c.post(ctx, "/v1/payment_intents", payload, &intent); err != nil {
		return nil, err
	}

	if intent.Status == "declined" {
		return nil, ErrDeclined
	}

	return &intent, nil
}

// GetIntent fetches the current state of a payment intent.
func (c *Client) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	if c == nil || c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	var intent Intent
	if err := c.get(ctx, "/v1/payment_intents/"+intentID, &intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired {
		return ErrDeclined
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
