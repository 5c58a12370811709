// Package geodesy provides interchangeable distance-model backends over
// geo.Location. Every backend answers the same two questions: how far and on
// what bearing is one location from another, and where does one end up
// leaving a location on a bearing for a distance.
//
// A backend is an explicit value chosen per call site. There is no package
// level selector.
package geodesy

import (
	"fmt"

	"github.com/uavaustin/geo-distance/geo"
)

type Model interface {
	// DistanceAndBearingTo returns the distance in meters and the initial
	// bearing in radians, [0, 2π), from one location to another.
	DistanceAndBearingTo(from, to geo.Location) (float64, float64)

	// Destination returns the location reached from a starting point on
	// the given bearing (radians) after the given distance (meters).
	Destination(from geo.Location, bearing, distance float64) geo.Location
}

// ByName resolves a backend from its wire name. An empty name selects the
// flat-earth model.
func ByName(name string) (Model, error) {
	switch name {
	case "", "flat-earth":
		return FlatEarth{}, nil
	case "haversine":
		return Haversine{}, nil
	case "spherical":
		return Spherical{}, nil
	case "vincenty":
		return Vincenty{}, nil
	}
	return nil, fmt.Errorf("unknown distance model '%s'", name)
}
