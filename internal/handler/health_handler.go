package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	modelConfigured bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(modelConfigured bool) *HealthHandler {
	return &HealthHandler{modelConfigured: modelConfigured}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.modelConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "no model provider configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
