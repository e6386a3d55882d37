package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/utils"
)

// AdminHandler serves the read-only admin views over the persisted
// collections.
type AdminHandler struct {
	orders *service.OrderService
	agents *service.AgentService
	afa    *service.AfaService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(orders *service.OrderService, agents *service.AgentService, afa *service.AfaService) *AdminHandler {
	return &AdminHandler{orders: orders, agents: agents, afa: afa}
}

// ListOrders handles GET /v1/admin/orders.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved successfully", gin.H{"orders": orders})
}

// ListAgents handles GET /v1/admin/agents.
func (h *AdminHandler) ListAgents(c *gin.Context) {
	agents, err := h.agents.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list agents")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list agents")
		return
	}
	utils.Success(c, 200, "Agents retrieved successfully", gin.H{"agents": agents})
}

// ListAfaRegistrations handles GET /v1/admin/afa-registrations.
func (h *AdminHandler) ListAfaRegistrations(c *gin.Context) {
	regs, err := h.afa.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list AFA registrations")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list AFA registrations")
		return
	}
	utils.Success(c, 200, "AFA registrations retrieved successfully", gin.H{"registrations": regs})
}

// GetStats handles GET /v1/admin/stats.
func (h *AdminHandler) GetStats(c *gin.Context) {
	orders, err := h.orders.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute stats")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to compute stats")
		return
	}

	var pending int
	var revenue float64
	for _, o := range orders {
		if o.Status == models.OrderStatusPending {
			pending++
		}
		for _, it := range o.Items {
			revenue += it.Price * float64(it.Quantity)
		}
	}

	agents, err := h.agents.List()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to compute stats")
		return
	}
	regs, err := h.afa.List()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to compute stats")
		return
	}

	utils.Success(c, 200, "Stats retrieved successfully", gin.H{
		"totalOrders":      len(orders),
		"pendingOrders":    pending,
		"totalRevenue":     revenue,
		"totalAgents":      len(agents),
		"afaRegistrations": len(regs),
	})
}
