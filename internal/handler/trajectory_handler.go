package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joaofig/evedb-go/internal/models"
	"github.com/joaofig/evedb-go/internal/service"
	"github.com/joaofig/evedb-go/pkg/response"
)

// TrajectoryHandler handles HTTP requests for trajectories
type TrajectoryHandler struct {
	service *service.TrajectoryService
}

// NewTrajectoryHandler creates a new trajectory handler
func NewTrajectoryHandler(service *service.TrajectoryService) *TrajectoryHandler {
	return &TrajectoryHandler{service: service}
}

// GetTrajectories handles GET /api/v1/trajectories
func (h *TrajectoryHandler) GetTrajectories(c *gin.Context) {
	var filter models.TrajectoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	trajectories, total, err := h.service.GetTrajectories(filter)
	if err != nil {
		response.InternalError(c, "Failed to get trajectories", err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, gin.H{
		"data":       trajectories,
		"total":      total,
		"page":       filter.Page,
		"pageSize":   filter.PageSize,
		"totalPages": totalPages,
	})
}

// GetTrajectoryByID handles GET /api/v1/trajectories/:id
func (h *TrajectoryHandler) GetTrajectoryByID(c *gin.Context) {
	id, ok := h.trajectoryID(c)
	if !ok {
		return
	}

	trajectory, err := h.service.GetTrajectoryByID(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get trajectory", err)
		return
	}
	if trajectory == nil {
		response.NotFound(c, "Trajectory not found")
		return
	}
	response.Success(c, trajectory)
}

// GetTrajectoryPoints handles GET /api/v1/trajectories/:id/points
func (h *TrajectoryHandler) GetTrajectoryPoints(c *gin.Context) {
	id, ok := h.trajectoryID(c)
	if !ok {
		return
	}

	points, err := h.service.GetTrajectoryPoints(id)
	if err != nil {
		response.InternalError(c, "Failed to get trajectory points", err)
		return
	}
	response.Success(c, points)
}

// GetTrajectoryNodes handles GET /api/v1/trajectories/:id/nodes
func (h *TrajectoryHandler) GetTrajectoryNodes(c *gin.Context) {
	id, ok := h.trajectoryID(c)
	if !ok {
		return
	}

	nodes, err := h.service.GetTrajectoryNodes(id)
	if err != nil {
		response.InternalError(c, "Failed to get trajectory nodes", err)
		return
	}
	response.Success(c, nodes)
}

func (h *TrajectoryHandler) trajectoryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid trajectory id", err)
		return 0, false
	}
	return id, true
}
