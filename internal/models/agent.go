package models

import "time"

// Agent is a registered reseller agent. Registration is at-most-once keyed by
// payment reference or email.
type Agent struct {
	Reference string    `db:"reference" json:"reference"`
	FullName  string    `db:"full_name" json:"fullName"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address,omitempty"`
	PaidAt    time.Time `db:"paid_at" json:"paidAt"`
	FeeAmount float64   `db:"fee_amount" json:"feeAmount"`
}

// RegisterAgentRequest is the POST /agents request body.
type RegisterAgentRequest struct {
	Reference string `json:"reference"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}
