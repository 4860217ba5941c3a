// Package service holds the business logic behind the query API handlers.
package service

import (
	"github.com/joaofig/evedb-go/internal/models"
	"github.com/joaofig/evedb-go/internal/repository"
)

// VehicleService handles business logic for vehicles
type VehicleService struct {
	repo *repository.VehicleRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(repo *repository.VehicleRepository) *VehicleService {
	return &VehicleService{repo: repo}
}

// GetVehicles retrieves all vehicles
func (s *VehicleService) GetVehicles() ([]models.Vehicle, error) {
	return s.repo.GetVehicles()
}

// GetVehicleByID retrieves a single vehicle by id
func (s *VehicleService) GetVehicleByID(id int64) (*models.Vehicle, error) {
	return s.repo.GetVehicleByID(id)
}
