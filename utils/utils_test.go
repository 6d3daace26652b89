package utils

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"pacearena-api/models"
)

func TestDistanceMiles(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want, tolerance        float64
	}{
		{"same point", 40.7580, -73.9855, 40.7580, -73.9855, 0, 1e-9},
		{"0.58 degrees north", 40.7580, -73.9855, 41.3380, -73.9855, 40.07, 0.05},
		{"midtown to philadelphia", 40.7549, -73.9840, 39.9526, -75.1652, 83.3, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMiles(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("DistanceMiles = %.3f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestBoundingBoxAroundContainsRadius(t *testing.T) {
	lat, lng, radius := 40.7580, -73.9855, 25.0
	box := BoundingBoxAround(lat, lng, radius)
	if !box.LngBounded {
		t.Fatal("expected a longitude bound at NYC")
	}

	// Points exactly on the circle in the four compass directions.
	latEdge := radius / (earthRadiusMiles * math.Pi / 180)
	lngEdge := latEdge / math.Cos(lat*math.Pi/180)
	for _, p := range [][2]float64{
		{lat + latEdge, lng}, {lat - latEdge, lng},
		{lat, lng + lngEdge}, {lat, lng - lngEdge},
	} {
		if p[0] < box.MinLat || p[0] > box.MaxLat || p[1] < box.MinLng || p[1] > box.MaxLng {
			t.Errorf("point %v outside box %+v", p, box)
		}
	}
}

func TestBoundingBoxAroundAntimeridian(t *testing.T) {
	if box := BoundingBoxAround(0, 179.9, 25); box.LngBounded {
		t.Errorf("box crossing the antimeridian should not bound longitude: %+v", box)
	}
	if box := BoundingBoxAround(89.99, 0, 25); box.LngBounded || box.MaxLat != 90 {
		t.Errorf("polar box = %+v", box)
	}
}

func TestIsValidPace(t *testing.T) {
	for pace, want := range map[string]bool{
		"7:30": true, "10:05": true, "7:60": false, "730": false, "": false, "7:3": false,
	} {
		if got := IsValidPace(pace); got != want {
			t.Errorf("IsValidPace(%q) = %v, want %v", pace, got, want)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrAuthRequired, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", models.ErrEventNotFound), http.StatusNotFound},
		{models.ErrAlreadyRegistered, http.StatusConflict},
		{models.ErrEventFull, http.StatusConflict},
		{models.ErrMissingFields, http.StatusBadRequest},
		{models.ErrValidation, http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
