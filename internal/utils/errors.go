package utils

import "errors"

// Common application errors used across services.
var (
	ErrMissingFields     = errors.New("MISSING_FIELDS")
	ErrInvalidPhone      = errors.New("INVALID_PHONE")
	ErrPaymentNotReady   = errors.New("PAYMENT_NOT_READY")
	ErrPaymentNotFound   = errors.New("PAYMENT_NOT_FOUND")
	ErrPaymentNotPaid    = errors.New("PAYMENT_NOT_PAID")
	ErrBundleNotFound    = errors.New("BUNDLE_NOT_FOUND")
	ErrOrderNotFound     = errors.New("ORDER_NOT_FOUND")
	ErrInvalidCredential = errors.New("INVALID_CREDENTIALS")
	ErrAdminDisabled     = errors.New("ADMIN_DISABLED")
)
