// Package paystack is a minimal server-side client for the Paystack API,
// covering the two calls the storefront needs: initializing a checkout and
// verifying a transaction reference.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// BaseURL is the Paystack API base URL.
const BaseURL = "https://api.paystack.co"

// Client is a minimal HTTP client for the Paystack API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	debug      bool
}

// NewClient constructs a Paystack client with sane defaults.
func NewClient(secretKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    BaseURL,
		secretKey:  secretKey,
		debug:      os.Getenv("ENV") == "development",
	}
}

// NewClientWithBaseURL constructs a client pointed at a custom base URL.
// Used by tests to target a local server.
func NewClientWithBaseURL(secretKey, baseURL string) *Client {
	c := NewClient(secretKey)
	c.baseURL = baseURL
	return c
}

// InitializeTransaction starts a hosted checkout and returns its handle.
func (c *Client) InitializeTransaction(ctx context.Context, req *InitializeRequest) (*InitializeResponse, error) {
	var resp InitializeResponse
	if err := c.doRequest(ctx, http.MethodPost, "/transaction/initialize", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", resp.Message)
	}
	return &resp, nil
}

// VerifyTransaction looks up the state of a payment by its reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	var resp VerifyResponse
	path := "/transaction/verify/" + reference
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack verify failed: %s", resp.Message)
	}
	return &resp.Data, nil
}

// doRequest performs an HTTP request against the Paystack API with JSON
// payloads and decodes the JSON response into result.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		if c.debug {
			log.Debug().
				Str("endpoint", c.baseURL+endpoint).
				RawJSON("request", payload).
				Msg("[PAYSTACK] Outgoing request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[PAYSTACK] Incoming response")
	}

	// Paystack encodes failure in the JSON body; decode regardless of status
	// code to surface any error message.
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
