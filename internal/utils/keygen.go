package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GeneratePaymentReference builds a payment reference for a new checkout.
// Format: gdh_<unix-millis>_<short-uuid>, e.g. gdh_1735824000000_a1b2c3d4.
// The millisecond timestamp keeps references sortable; the uuid suffix keeps
// two checkouts in the same millisecond distinct.
func GeneratePaymentReference() string {
	return fmt.Sprintf("gdh_%d_%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
