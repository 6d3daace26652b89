package utils

import (
	"math"
)

const (
	earthRadiusMiles  = 3958.8
	milesPerDegreeLat = 69.0
)

// DistanceMiles calculates distance between two points using Haversine formula
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// BoundingBox is a coarse lat/lng rectangle used to prefilter radius searches
// in SQL. LngBounded is false near the poles or when the box would cross the
// antimeridian; callers then skip the longitude predicate.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	LngBounded     bool
}

// BoundingBoxAround returns a box that contains every point within
// radiusMiles of (lat, lng). It may contain points outside the radius.
func BoundingBoxAround(lat, lng, radiusMiles float64) BoundingBox {
	// Pad by 1% so floating point error never excludes a point on the edge.
	latDelta := radiusMiles / milesPerDegreeLat * 1.01
	box := BoundingBox{
		MinLat: math.Max(lat-latDelta, -90),
		MaxLat: math.Min(lat+latDelta, 90),
	}

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		return box
	}
	lngDelta := radiusMiles / (milesPerDegreeLat * cosLat) * 1.01
	if lng-lngDelta < -180 || lng+lngDelta > 180 {
		return box
	}
	box.MinLng = lng - lngDelta
	box.MaxLng = lng + lngDelta
	box.LngBounded = true
	return box
}

// RoundToDecimal rounds a float to specified decimal places
func RoundToDecimal(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
