package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/utils"
	"github.com/geniusdatahub/gdh_api/pkg/paystack"
)

// WebhookHandler receives Paystack event notifications. Events are verified
// and cross-checked against recorded orders; orders themselves are append-only
// and are never modified from here.
type WebhookHandler struct {
	orders    *service.OrderService
	secretKey string
}

// NewWebhookHandler constructs a WebhookHandler. secretKey is the Paystack
// secret key used to verify the x-paystack-signature header.
func NewWebhookHandler(orders *service.OrderService, secretKey string) *WebhookHandler {
	return &WebhookHandler{orders: orders, secretKey: secretKey}
}

// HandlePaystackEvent handles POST /webhook/paystack.
func (h *WebhookHandler) HandlePaystackEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid body"})
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if !utils.VerifyPaystackSignature(body, signature, h.secretKey) {
		log.Warn().Str("ip", c.ClientIP()).Msg("Paystack webhook signature mismatch")
		c.JSON(401, gin.H{"error": "Invalid signature"})
		return
	}

	var event paystack.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if event.Event == "charge.success" {
		order, err := h.orders.FindByReference(event.Data.Reference)
		switch {
		case err != nil:
			log.Error().Err(err).Str("reference", event.Data.Reference).Msg("Webhook order lookup failed")
		case order == nil:
			// Payment exists but no order was recorded; the reconcile worker
			// reports these too, but a webhook gives earlier notice.
			log.Warn().
				Str("reference", event.Data.Reference).
				Int("amount", event.Data.Amount).
				Msg("Paystack charge.success with no recorded order")
		default:
			log.Info().
				Str("reference", event.Data.Reference).
				Str("status", string(order.Status)).
				Msg("Paystack charge.success matched recorded order")
		}
	}

	c.JSON(200, gin.H{"received": true})
}
