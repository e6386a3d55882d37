package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/service"
)

// CatalogHandler serves the public bundle catalog endpoints. Responses are
// bare JSON (no envelope) for wire compatibility with the storefront.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetBundles handles GET /bundles?network=<name>.
func (h *CatalogHandler) GetBundles(c *gin.Context) {
	network := c.Query("network")
	bundles, err := h.catalog.GetBundles(c.Request.Context(), network)
	if err != nil {
		log.Error().Err(err).Msg("Bundles API error")
		c.JSON(500, gin.H{"error": "Failed to load bundles"})
		return
	}
	c.JSON(200, bundles)
}

// GetCategories handles GET /categories.
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	cats, err := h.catalog.GetCategories(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Categories API error")
		c.JSON(500, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(200, cats)
}
