package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	catalog *service.CatalogService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(catalog *service.CatalogService) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// GetHealth responds with service and catalog status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	catalogStatus := "ok"
	bundleCount := 0
	bundles, err := h.catalog.GetBundles(c.Request.Context(), "")
	if err != nil {
		catalogStatus = "unavailable"
	} else {
		bundleCount = len(bundles)
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"catalog": gin.H{
			"status":  catalogStatus,
			"bundles": bundleCount,
		},
	})
}
