package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pacearena-api/middleware"
	"pacearena-api/models"
	"pacearena-api/services"
	"pacearena-api/utils"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	resp, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	resp, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to sign in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Session returns the signed-in user, or 401 when there is none.
func (ac *AuthController) Session(c *gin.Context) {
	user, err := ac.authService.Session(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.SendServiceError(c, err, "Failed to load session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
