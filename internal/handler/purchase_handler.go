package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/purchase"
	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/utils"
)

// PurchaseHandler exposes the purchase wizard over HTTP. Sessions are opaque
// IDs; each transition endpoint maps to one state-machine operation.
type PurchaseHandler struct {
	purchases *service.PurchaseService
}

// NewPurchaseHandler constructs a PurchaseHandler.
func NewPurchaseHandler(purchases *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// Open handles POST /v1/purchase {bundleId}.
func (h *PurchaseHandler) Open(c *gin.Context) {
	var req struct {
		BundleID string `json:"bundleId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BundleID == "" {
		utils.Error(c, 400, "MISSING_FIELDS", "bundleId is required")
		return
	}

	id, state, err := h.purchases.Open(c.Request.Context(), req.BundleID)
	if err != nil {
		if errors.Is(err, utils.ErrBundleNotFound) {
			utils.Error(c, 404, "BUNDLE_NOT_FOUND", "Unknown bundle")
			return
		}
		log.Error().Err(err).Msg("Failed to open purchase flow")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to open purchase flow")
		return
	}
	utils.Success(c, 200, "Purchase flow opened", gin.H{"sessionId": id, "flow": state})
}

// Get handles GET /v1/purchase/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
	state, err := h.purchases.Get(c.Param("id"))
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	utils.Success(c, 200, "Purchase flow state", gin.H{"flow": state})
}

// SetRecipient handles PUT /v1/purchase/:id/recipient {recipientNumber}.
func (h *PurchaseHandler) SetRecipient(c *gin.Context) {
	var req struct {
		RecipientNumber string `json:"recipientNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid JSON body")
		return
	}

	state, err := h.purchases.SetRecipient(c.Param("id"), req.RecipientNumber)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	utils.Success(c, 200, "Recipient number updated", gin.H{"flow": state})
}

// Confirm handles POST /v1/purchase/:id/confirm.
func (h *PurchaseHandler) Confirm(c *gin.Context) {
	state, err := h.purchases.Confirm(c.Param("id"))
	if err != nil {
		if errors.Is(err, purchase.ErrInvalidRecipient) {
			// The flow stays in selection; the storefront shows the inline error.
			c.JSON(422, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_RECIPIENT", "message": "Enter a valid number: 05 followed by 8 digits"},
				"flow":    state,
			})
			return
		}
		h.writeFlowError(c, err)
		return
	}
	utils.Success(c, 200, "Purchase confirmed", gin.H{"flow": state})
}

// Back handles POST /v1/purchase/:id/back.
func (h *PurchaseHandler) Back(c *gin.Context) {
	state, err := h.purchases.Back(c.Param("id"))
	if err != nil {
		h.writeFlowError(c, err)
		return
	}
	utils.Success(c, 200, "Returned to selection", gin.H{"flow": state})
}

// Pay handles POST /v1/purchase/:id/pay.
func (h *PurchaseHandler) Pay(c *gin.Context) {
	state, init, err := h.purchases.Pay(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, utils.ErrPaymentNotReady) {
			// Step has advanced to payment; the client waits and retries.
			c.JSON(503, gin.H{
				"success": false,
				"error":   gin.H{"code": "PAYMENT_NOT_READY", "message": "Payment system is still loading. Please wait."},
				"flow":    state,
			})
			return
		}
		h.writeFlowError(c, err)
		return
	}
	utils.Success(c, 200, "Payment initialized", gin.H{"flow": state, "payment": init})
}

// Complete handles POST /v1/purchase/:id/complete {reference}.
func (h *PurchaseHandler) Complete(c *gin.Context) {
	var req struct {
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Reference == "" {
		utils.Error(c, 400, "MISSING_FIELDS", "reference is required")
		return
	}

	params, err := h.purchases.Complete(c.Request.Context(), c.Param("id"), req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrPaymentNotFound):
			utils.Error(c, 402, "PAYMENT_NOT_FOUND", "Payment reference could not be verified")
		case errors.Is(err, utils.ErrPaymentNotPaid):
			utils.Error(c, 402, "PAYMENT_NOT_PAID", "Payment was not completed")
		default:
			h.writeFlowError(c, err)
		}
		return
	}
	utils.Success(c, 200, "Purchase completed", gin.H{"success": params})
}

// Cancel handles DELETE /v1/purchase/:id.
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	h.purchases.Cancel(c.Param("id"))
	utils.Success(c, 200, "Purchase flow closed", nil)
}

func (h *PurchaseHandler) writeFlowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, purchase.ErrSessionNotFound):
		utils.Error(c, 404, "SESSION_NOT_FOUND", "Unknown or expired purchase session")
	case errors.Is(err, purchase.ErrInvalidTransition):
		utils.Error(c, 409, "INVALID_TRANSITION", "Operation not allowed in the current step")
	default:
		log.Error().Err(err).Msg("Purchase flow error")
		utils.Error(c, 500, "INTERNAL_ERROR", "Purchase flow error")
	}
}
