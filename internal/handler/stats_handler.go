package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/joaofig/evedb-go/internal/service"
	"github.com/joaofig/evedb-go/pkg/response"
)

// StatsHandler handles HTTP requests for dataset statistics
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetDatasetStats handles GET /api/v1/stats
func (h *StatsHandler) GetDatasetStats(c *gin.Context) {
	stats, err := h.service.GetDatasetStats()
	if err != nil {
		response.InternalError(c, "Failed to compute dataset statistics", err)
		return
	}
	response.Success(c, stats)
}
