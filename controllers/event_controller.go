package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pacearena-api/middleware"
	"pacearena-api/models"
	"pacearena-api/services"
	"pacearena-api/utils"
)

type EventController struct {
	eventService *services.EventService
}

func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// GetEvents lists every event by date with like and comment aggregates.
func (ec *EventController) GetEvents(c *gin.Context) {
	events, err := ec.eventService.List(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.SendServiceError(c, err, "Failed to fetch events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetNearbyEvents is the get_nearby_events procedure.
func (ec *EventController) GetNearbyEvents(c *gin.Context) {
	var req models.NearbyEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	events, err := ec.eventService.Nearby(c.Request.Context(), req, c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.SendServiceError(c, err, "Failed to fetch nearby events")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	event, err := ec.eventService.Get(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.SendServiceError(c, err, "Failed to fetch event")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	event, err := ec.eventService.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to create event")
		return
	}
	c.JSON(http.StatusCreated, event)
}
