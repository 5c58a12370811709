package geodesy

import (
	"math"

	"github.com/uavaustin/geo-distance/geo"
)

// Haversine computes great-circle distances on a sphere of the mean earth
// radius, with the standard initial-bearing formula, and the matching
// spherical forward solution for destinations.
type Haversine struct{}

func (Haversine) DistanceAndBearingTo(from, to geo.Location) (float64, float64) {
	Δφ := to.Lat - from.Lat
	Δλ := to.Lon - from.Lon

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(from.Lat)*math.Cos(to.Lat)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	d := 2 * geo.EarthRadius * math.Asin(math.Sqrt(a))

	return d, from.BearingTo(to)
}

func (Haversine) Destination(from geo.Location, bearing, distance float64) geo.Location {
	δ := distance / geo.EarthRadius

	φ2 := math.Asin(math.Sin(from.Lat)*math.Cos(δ) +
		math.Cos(from.Lat)*math.Sin(δ)*math.Cos(bearing))
	λ2 := from.Lon + math.Atan2(math.Sin(bearing)*math.Sin(δ)*math.Cos(from.Lat),
		math.Cos(δ)-math.Sin(from.Lat)*math.Sin(φ2))

	return geo.Location{Lat: φ2, Lon: λ2, Alt: from.Alt}
}
