package utils

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// GeneratePaystackSignature creates the HMAC-SHA512 signature Paystack sends
// in the x-paystack-signature header, keyed by the account's secret key.
func GeneratePaystackSignature(payload []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaystackSignature validates a webhook payload signature.
func VerifyPaystackSignature(payload []byte, signature, secret string) bool {
	expected := GeneratePaystackSignature(payload, secret)
	return hmac.Equal([]byte(signature), []byte(expected))
}
