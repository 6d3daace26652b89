package client

import (
	"errors"
	"fmt"
	"net/http"

	"pacearena-api/models"
)

// Authentication and missing-field failures reuse models.ErrAuthRequired and
// models.ErrMissingFields so callers can match either side of the wire.
var (
	ErrGeolocationUnsupported = errors.New("geolocation is not available on this device")
	ErrPermissionDenied       = errors.New("location permission denied")
	ErrLocationTimeout        = errors.New("location request timed out")
	ErrBackend                = errors.New("backend request failed")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *APIError) Unwrap() []error {
	errs := []error{ErrBackend}
	switch e.Status {
	case http.StatusUnauthorized:
		errs = append(errs, models.ErrAuthRequired)
	case http.StatusBadRequest:
		errs = append(errs, models.ErrValidation)
	}
	return errs
}
