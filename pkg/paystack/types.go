package paystack

import "encoding/json"

// InitializeRequest starts a hosted checkout.
// Amount is in the currency subunit (pesewas for GHS).
type InitializeRequest struct {
	Email     string   `json:"email"`
	Amount    int      `json:"amount"`
	Currency  string   `json:"currency,omitempty"`
	Reference string   `json:"reference,omitempty"`
	Metadata  Metadata `json:"metadata,omitempty"`
}

// Metadata carries the storefront's custom fields through the checkout.
type Metadata struct {
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}

// CustomField is a display item shown on the Paystack dashboard.
type CustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

// InitializeResponse wraps the hosted checkout handle.
type InitializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// Transaction is the verified state of a payment.
type Transaction struct {
	ID        int64           `json:"id"`
	Status    string          `json:"status"` // success, failed, abandoned
	Reference string          `json:"reference"`
	Amount    int             `json:"amount"`
	Currency  string          `json:"currency"`
	PaidAt    string          `json:"paid_at"`
	Channel   string          `json:"channel"`
	Metadata  json.RawMessage `json:"metadata"`
}

// VerifyResponse wraps a transaction lookup.
type VerifyResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

// WebhookEvent is the envelope Paystack POSTs to the webhook endpoint.
type WebhookEvent struct {
	Event string      `json:"event"` // e.g. charge.success
	Data  Transaction `json:"data"`
}
