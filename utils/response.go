package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"pacearena-api/models"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

func SendValidationError(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Message: err,
		Code:    http.StatusBadRequest,
	})
}

// StatusFor maps domain errors to HTTP statuses. Unknown errors are 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrAuthRequired), errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrEventNotFound), errors.Is(err, models.ErrPostNotFound),
		errors.Is(err, models.ErrClubNotFound), errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyRegistered), errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrEventFull), errors.Is(err, models.ErrRegistrationClosed):
		return http.StatusConflict
	case errors.Is(err, models.ErrMissingFields), errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidCoordinates),
		errors.Is(err, models.ErrInvalidTarget), errors.Is(err, models.ErrEmptyComment),
		errors.Is(err, models.ErrInvalidPaceGroup), errors.Is(err, models.ErrInvalidPace),
		errors.Is(err, models.ErrInvalidRun), errors.Is(err, models.ErrInvalidScreenshot),
		errors.Is(err, models.ErrInvalidDistanceBand):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// SendServiceError writes err with the status from StatusFor. Internal
// errors are logged and replaced with fallback so storage details never leak.
func SendServiceError(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		SendError(c, status, fallback)
		return
	}
	SendError(c, status, err.Error())
}
