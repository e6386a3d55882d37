// Package supplier is the client for the optional data-supplier fulfillment
// API. Its absence or failure never blocks order recording.
package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Item is one line item forwarded to the supplier.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Network  string  `json:"network,omitempty"`
}

// Result is the outcome of a fulfillment attempt. A failed attempt carries
// the supplier's message so it can be retained on the order record.
type Result struct {
	Success bool
	Message string
}

// Client posts fulfillment requests to the configured supplier endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// NewClient constructs a supplier client. url and apiKey may be empty, in
// which case Fulfill reports success with an informational message.
func NewClient(url, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		apiKey:     apiKey,
	}
}

// Configured reports whether a supplier endpoint is set.
func (c *Client) Configured() bool {
	return c.url != "" && c.apiKey != ""
}

// Fulfill sends the items and delivery phone to the supplier. An unreachable
// or non-2xx supplier yields a failed Result, never an error: the caller
// downgrades the order to pending rather than aborting.
func (c *Client) Fulfill(ctx context.Context, items []Item, phone string) Result {
	if !c.Configured() {
		return Result{Success: true, Message: "Supplier API not configured; order recorded."}
	}

	payload, err := json.Marshal(map[string]any{"items": items, "phone": phone})
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Supplier request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "Supplier API error"
		}
		return Result{Success: false, Message: msg}
	}
	return Result{Success: true}
}
