package utils

import (
	"regexp"
	"strings"
)

var paceRegex = regexp.MustCompile(`^\d{1,2}:[0-5]\d$`)

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

func IsValidCoordinates(lat, lng float64) bool {
	return IsValidLatitude(lat) && IsValidLongitude(lng)
}

// IsValidPace accepts per-mile paces like "7:30" or "10:05".
func IsValidPace(pace string) bool {
	return paceRegex.MatchString(pace)
}

// BlankAny reports whether any value is empty after trimming whitespace.
func BlankAny(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
