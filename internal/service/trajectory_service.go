package service

import (
	"github.com/joaofig/evedb-go/internal/models"
	"github.com/joaofig/evedb-go/internal/repository"
)

// TrajectoryService handles business logic for trajectories
type TrajectoryService struct {
	trajectories *repository.TrajectoryRepository
	nodes        *repository.NodeRepository
}

// NewTrajectoryService creates a new trajectory service
func NewTrajectoryService(trajectories *repository.TrajectoryRepository, nodes *repository.NodeRepository) *TrajectoryService {
	return &TrajectoryService{trajectories: trajectories, nodes: nodes}
}

// GetTrajectories retrieves trajectories with filtering and pagination
func (s *TrajectoryService) GetTrajectories(filter models.TrajectoryFilter) ([]models.Trajectory, int64, error) {
	return s.trajectories.GetTrajectories(filter)
}

// GetTrajectoryByID retrieves a single trajectory by id
func (s *TrajectoryService) GetTrajectoryByID(id int64) (*models.Trajectory, error) {
	return s.trajectories.GetTrajectoryByID(id)
}

// GetTrajectoryPoints retrieves a trajectory's map-matched signal points
// ordered by timestamp
func (s *TrajectoryService) GetTrajectoryPoints(id int64) ([]models.TrajectoryPoint, error) {
	return s.trajectories.Points(id)
}

// GetTrajectoryNodes retrieves a trajectory's map-matched road-network
// nodes in leg order
func (s *TrajectoryService) GetTrajectoryNodes(id int64) ([]models.Node, error) {
	return s.nodes.GetNodesByTrajectory(id)
}
