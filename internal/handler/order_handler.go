package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/utils"
)

// OrderHandler serves POST /orders.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder handles POST /orders. The response is the bare
// {reference, status, message} shape the storefront expects.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON body"})
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrMissingFields) {
			c.JSON(400, gin.H{"error": "Missing required fields: reference, items, email, phone"})
			return
		}
		log.Error().Err(err).Msg("Orders API error")
		c.JSON(500, gin.H{"error": "Failed to create order"})
		return
	}
	c.JSON(200, resp)
}
