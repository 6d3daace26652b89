package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pacearena-api/middleware"
	"pacearena-api/models"
	"pacearena-api/services"
	"pacearena-api/utils"
)

type RegistrationController struct {
	registrationService *services.RegistrationService
}

func NewRegistrationController(registrationService *services.RegistrationService) *RegistrationController {
	return &RegistrationController{registrationService: registrationService}
}

func (rc *RegistrationController) RegisterForEvent(c *gin.Context) {
	var req models.RegisterForEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	reg, err := rc.registrationService.Register(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"), req)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to register for event")
		return
	}
	c.JSON(http.StatusCreated, reg)
}

func (rc *RegistrationController) GetMyRegistrations(c *gin.Context) {
	regs, err := rc.registrationService.ListForUser(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.SendServiceError(c, err, "Failed to fetch registrations")
		return
	}
	c.JSON(http.StatusOK, regs)
}
