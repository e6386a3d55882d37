package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/utils"
)

// AgentHandler serves POST /agents.
type AgentHandler struct {
	agents *service.AgentService
}

// NewAgentHandler constructs an AgentHandler.
func NewAgentHandler(agents *service.AgentService) *AgentHandler {
	return &AgentHandler{agents: agents}
}

// Register handles POST /agents.
func (h *AgentHandler) Register(c *gin.Context) {
	var req models.RegisterAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON body"})
		return
	}

	alreadyRegistered, err := h.agents.Register(&req)
	if err != nil {
		if errors.Is(err, utils.ErrMissingFields) {
			c.JSON(400, gin.H{"error": "Missing required fields: reference, fullName, email, phone"})
			return
		}
		log.Error().Err(err).Msg("Agents API error")
		c.JSON(500, gin.H{"error": "Failed to register agent"})
		return
	}

	if alreadyRegistered {
		c.JSON(200, gin.H{"success": true, "message": "Agent already registered."})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Agent registered. Portal access granted."})
}
