package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/utils"
)

// AfaHandler serves the AFA registration gate endpoints.
type AfaHandler struct {
	afa *service.AfaService
}

// NewAfaHandler constructs an AfaHandler.
func NewAfaHandler(afa *service.AfaService) *AfaHandler {
	return &AfaHandler{afa: afa}
}

// GetStatus handles GET /afa?phone=.
func (h *AfaHandler) GetStatus(c *gin.Context) {
	phoneParam := strings.TrimSpace(c.Query("phone"))
	if phoneParam == "" {
		c.JSON(400, gin.H{"error": "Missing phone number"})
		return
	}

	resp, err := h.afa.Status(phoneParam)
	if err != nil {
		h.writeError(c, err, "Failed to check AFA status")
		return
	}
	c.JSON(200, resp)
}

// Register handles POST /afa.
func (h *AfaHandler) Register(c *gin.Context) {
	var req models.AfaRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Phone) == "" {
		c.JSON(400, gin.H{"error": "Phone number is required"})
		return
	}

	resp, err := h.afa.Register(strings.TrimSpace(req.Phone), strings.TrimSpace(req.Name))
	if err != nil {
		h.writeError(c, err, "Failed to register for AFA")
		return
	}
	c.JSON(200, resp)
}

func (h *AfaHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, utils.ErrInvalidPhone):
		c.JSON(400, gin.H{"error": "Invalid Ghana MTN number. Use 05 followed by 8 digits."})
	case errors.Is(err, utils.ErrMissingFields):
		c.JSON(400, gin.H{"error": "Missing phone number"})
	default:
		log.Error().Err(err).Msg("AFA API error")
		c.JSON(500, gin.H{"error": fallback})
	}
}
