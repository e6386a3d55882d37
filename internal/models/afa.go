package models

import "time"

// AfaRegistration records a phone number registered for the AFA programme.
// At most one registration exists per normalized phone number, enforced by
// lookup-before-insert at the service layer.
type AfaRegistration struct {
	Phone        string    `db:"phone" json:"phone"`
	RegisteredAt time.Time `db:"registered_at" json:"registeredAt"`
	Name         string    `db:"name" json:"name,omitempty"`
}

// AfaStatusResponse is the GET /afa response body.
type AfaStatusResponse struct {
	Registered   bool       `json:"registered"`
	Phone        string     `json:"phone"`
	RegisteredAt *time.Time `json:"registeredAt"`
}

// AfaRegisterRequest is the POST /afa request body.
type AfaRegisterRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// AfaRegisterResponse is the POST /afa response body.
type AfaRegisterResponse struct {
	Success           bool      `json:"success"`
	AlreadyRegistered bool      `json:"alreadyRegistered"`
	Message           string    `json:"message"`
	Phone             string    `json:"phone"`
	RegisteredAt      time.Time `json:"registeredAt"`
}
