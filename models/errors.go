package models

import "errors"

var (
	ErrAuthRequired        = errors.New("authentication required")
	ErrMissingFields       = errors.New("missing required information")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrInvalidTarget       = errors.New("like or comment must reference exactly one of event or post")
	ErrEventNotFound       = errors.New("event not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrClubNotFound        = errors.New("club not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmptyComment        = errors.New("comment content is empty")
	ErrRegistrationClosed  = errors.New("registration is closed for this event")
	ErrEventFull           = errors.New("event is full")
	ErrAlreadyRegistered   = errors.New("already registered for this event")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidPaceGroup    = errors.New("pace group does not belong to the selected club")
	ErrInvalidPace         = errors.New("pace must be formatted as m:ss")
	ErrInvalidRun          = errors.New("distance and duration must be positive")
	ErrInvalidScreenshot   = errors.New("screenshot is not a readable image")
	ErrInvalidDistanceBand = errors.New("distance must be short or long")
)
