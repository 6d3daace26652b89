package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pacearena-api/models"
	"pacearena-api/services"
	"pacearena-api/utils"
)

type LeaderboardController struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardController(leaderboardService *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboardService: leaderboardService}
}

// GetLeaderboard serves ?distance=short|long (default short).
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	band, err := models.ParseDistanceBand(c.Query("distance"))
	if err != nil {
		utils.SendServiceError(c, err, "")
		return
	}
	board, err := lc.leaderboardService.Leaderboard(c.Request.Context(), band)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to build leaderboard")
		return
	}
	c.JSON(http.StatusOK, board)
}

func (lc *LeaderboardController) GetDashboard(c *gin.Context) {
	band, err := models.ParseDistanceBand(c.Query("distance"))
	if err != nil {
		utils.SendServiceError(c, err, "")
		return
	}
	dash, err := lc.leaderboardService.Dashboard(c.Request.Context(), band)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dash)
}
