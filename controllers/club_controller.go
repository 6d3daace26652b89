package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pacearena-api/middleware"
	"pacearena-api/models"
	"pacearena-api/services"
	"pacearena-api/utils"
)

type ClubController struct {
	clubService *services.ClubService
}

func NewClubController(clubService *services.ClubService) *ClubController {
	return &ClubController{clubService: clubService}
}

func (cc *ClubController) GetClubs(c *gin.Context) {
	clubs, err := cc.clubService.List(c.Request.Context())
	if err != nil {
		utils.SendServiceError(c, err, "Failed to fetch clubs")
		return
	}
	c.JSON(http.StatusOK, clubs)
}

func (cc *ClubController) GetClub(c *gin.Context) {
	club, err := cc.clubService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err, "Failed to fetch club")
		return
	}
	c.JSON(http.StatusOK, club)
}

func (cc *ClubController) CreateClub(c *gin.Context) {
	var req models.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	club, err := cc.clubService.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to create club")
		return
	}
	c.JSON(http.StatusCreated, club)
}
