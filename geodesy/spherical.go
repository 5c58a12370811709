package geodesy

import (
	"math"

	"github.com/uavaustin/geo-distance/geo"
)

// Spherical uses the spherical law of cosines for distances and an acos
// bearing. Slightly cheaper than haversine and numerically rougher for very
// close points, where the acos argument sits at the edge of its domain.
type Spherical struct{}

func (Spherical) DistanceAndBearingTo(from, to geo.Location) (float64, float64) {
	Δλ := math.Abs(to.Lon - from.Lon)

	δ := math.Acos(math.Sin(from.Lat)*math.Sin(to.Lat) +
		math.Cos(from.Lat)*math.Cos(to.Lat)*math.Cos(Δλ))

	θ := math.Acos((math.Sin(to.Lat) - math.Sin(from.Lat)*math.Cos(δ)) /
		(math.Sin(δ) * math.Cos(from.Lat)))
	if math.Sin(to.Lon-from.Lon) < 0 {
		θ = 2*math.Pi - θ
	}

	return δ * geo.EarthRadius, θ
}

func (Spherical) Destination(from geo.Location, bearing, distance float64) geo.Location {
	return Haversine{}.Destination(from, bearing, distance)
}
