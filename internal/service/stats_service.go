package service

import (
	"github.com/joaofig/evedb-go/internal/models"
	"github.com/joaofig/evedb-go/internal/repository"
)

// StatsService handles business logic for dataset statistics
type StatsService struct {
	repo *repository.StatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(repo *repository.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// GetDatasetStats retrieves the dataset summary statistics
func (s *StatsService) GetDatasetStats() (*models.DatasetStats, error) {
	return s.repo.GetDatasetStats()
}
