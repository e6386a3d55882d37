package models

import "time"

// OrderStatus enumerates the possible order outcomes.
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusPending   OrderStatus = "pending"
)

// OrderItem is a single purchased line item.
type OrderItem struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	Quantity int     `db:"quantity" json:"quantity"`
	Network  string  `db:"network" json:"network,omitempty"`
}

// Order is a recorded purchase. Orders are append-only: once written they are
// never updated or cancelled.
type Order struct {
	Reference       string      `db:"reference" json:"reference"`
	Items           []OrderItem `db:"-" json:"items"`
	Email           string      `db:"email" json:"email"`
	FirstName       string      `db:"first_name" json:"firstName,omitempty"`
	LastName        string      `db:"last_name" json:"lastName,omitempty"`
	Phone           string      `db:"phone" json:"phone"`
	RecipientNumber string      `db:"recipient_number" json:"recipient_number,omitempty"`
	Address         string      `db:"address" json:"address,omitempty"`
	City            string      `db:"city" json:"city,omitempty"`
	Status          OrderStatus `db:"status" json:"status"`
	SupplierMessage string      `db:"supplier_message" json:"supplierMessage,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
}

// CreateOrderRequest is the POST /orders request body.
type CreateOrderRequest struct {
	Reference       string      `json:"reference"`
	Items           []OrderItem `json:"items"`
	Email           string      `json:"email"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	Phone           string      `json:"phone"`
	RecipientNumber string      `json:"recipient_number"`
	Address         string      `json:"address"`
	City            string      `json:"city"`
}

// CreateOrderResponse is the POST /orders response body.
type CreateOrderResponse struct {
	Reference string      `json:"reference"`
	Status    OrderStatus `json:"status"`
	Message   string      `json:"message"`
}
