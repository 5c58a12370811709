package geodesy

import "github.com/uavaustin/geo-distance/geo"

// FlatEarth linearizes latitude and longitude differences into tangent-plane
// meters with the radii of curvature at the starting point. It is exact for
// its own inverse and the cheapest of the backends, but only valid at short
// range and degenerate at the poles (see geo.Location).
type FlatEarth struct{}

func (FlatEarth) DistanceAndBearingTo(from, to geo.Location) (float64, float64) {
	d := from.DistanceTo(to, 0)
	return d.MagnitudeXY(), d.Bearing()
}

func (FlatEarth) Destination(from geo.Location, bearing, distance float64) geo.Location {
	return from.Offset(geo.FromMagnitudeBearing(distance, bearing, 0))
}
