// Package handler implements the HTTP handlers of the query API.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joaofig/evedb-go/internal/service"
	"github.com/joaofig/evedb-go/pkg/response"
)

// VehicleHandler handles HTTP requests for vehicles
type VehicleHandler struct {
	service *service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(service *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// GetVehicles handles GET /api/v1/vehicles
func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	vehicles, err := h.service.GetVehicles()
	if err != nil {
		response.InternalError(c, "Failed to get vehicles", err)
		return
	}
	response.Success(c, vehicles)
}

// GetVehicleByID handles GET /api/v1/vehicles/:id
func (h *VehicleHandler) GetVehicleByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid vehicle id", err)
		return
	}

	vehicle, err := h.service.GetVehicleByID(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get vehicle", err)
		return
	}
	if vehicle == nil {
		response.NotFound(c, "Vehicle not found")
		return
	}
	response.Success(c, vehicle)
}
