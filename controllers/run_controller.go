package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"pacearena-api/middleware"
	"pacearena-api/services"
	"pacearena-api/utils"
)

// maxScreenshotBytes caps run screenshot uploads.
const maxScreenshotBytes = 10 << 20

type RunController struct {
	runService *services.RunService
}

func NewRunController(runService *services.RunService) *RunController {
	return &RunController{runService: runService}
}

// SubmitRun accepts multipart form fields distance_miles, duration_seconds
// and a screenshot file.
func (rc *RunController) SubmitRun(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.PostForm("distance_miles"), 64)
	if err != nil {
		utils.SendValidationError(c, "distance_miles must be a number")
		return
	}
	duration, err := strconv.Atoi(c.PostForm("duration_seconds"))
	if err != nil {
		utils.SendValidationError(c, "duration_seconds must be an integer")
		return
	}

	header, err := c.FormFile("screenshot")
	if err != nil {
		utils.SendValidationError(c, "screenshot file is required")
		return
	}
	if header.Size > maxScreenshotBytes {
		utils.SendValidationError(c, "screenshot must be 10MB or smaller")
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to read screenshot")
		return
	}
	defer file.Close()

	run, err := rc.runService.Submit(c.Request.Context(), c.GetString(middleware.ContextUserID), services.RunInput{
		DistanceMiles:   distance,
		DurationSeconds: duration,
		Screenshot:      file,
	})
	if err != nil {
		utils.SendServiceError(c, err, "Failed to submit run")
		return
	}
	c.JSON(http.StatusCreated, run)
}
