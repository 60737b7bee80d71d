package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthHandler reports liveness and the running version
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a health handler reporting version
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Check handles health check requests
// GET /api/v1/health
func (h *HealthHandler) Check(c *gin.Context) {
	c.PureJSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
	})
}
