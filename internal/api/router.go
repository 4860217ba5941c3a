// Package api builds the HTTP router for the trajectory query API.
package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/joaofig/evedb-go/internal/handler"
	"github.com/joaofig/evedb-go/internal/middleware"
	"github.com/joaofig/evedb-go/internal/repository"
	"github.com/joaofig/evedb-go/internal/service"
)

// SetupRouter wires repositories, services and handlers into a gin engine.
func SetupRouter(db *sql.DB, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logger(log))
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	vehicleHandler := handler.NewVehicleHandler(
		service.NewVehicleService(repository.NewVehicleRepository(db)))
	trajectoryHandler := handler.NewTrajectoryHandler(
		service.NewTrajectoryService(
			repository.NewTrajectoryRepository(db),
			repository.NewNodeRepository(db)))
	statsHandler := handler.NewStatsHandler(
		service.NewStatsService(repository.NewStatsRepository(db)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "eVED trajectory API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("", vehicleHandler.GetVehicles)
			vehicles.GET("/:id", vehicleHandler.GetVehicleByID)
		}

		trajectories := api.Group("/trajectories")
		{
			trajectories.GET("", trajectoryHandler.GetTrajectories)
			trajectories.GET("/:id", trajectoryHandler.GetTrajectoryByID)
			trajectories.GET("/:id/points", trajectoryHandler.GetTrajectoryPoints)
			trajectories.GET("/:id/nodes", trajectoryHandler.GetTrajectoryNodes)
		}

		api.GET("/stats", statsHandler.GetDatasetStats)
	}

	return r
}
