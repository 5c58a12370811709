package geo

import "math"

// Mean earth radius and first eccentricity of the reference ellipsoid used
// by the flat-earth conversion.
const (
	EarthRadius = 6371008.0
	EarthEccen  = 0.0818191908
)

// Location is a geographic position. Lat and Lon are in radians, Lat in
// [-π/2, π/2], Lon interpreted modulo 2π. Alt is meters above the reference
// surface; a location on the ground simply carries Alt = 0.
//
// Conversions to and from Distance use a flat-earth approximation: latitude
// and longitude differences are scaled by the meridional and normal radii of
// curvature evaluated at the receiver. The approximation is only meaningful
// for displacements small against those radii, and it degrades at the poles
// where cos(Lat) vanishes: Offset divides by cos(Lat), so results there are
// non-finite rather than an error. Callers working near the poles must
// validate their inputs themselves.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt"`
}

func Radians(deg float64) float64 {
	return deg * π / 180.0
}

func Degrees(rad float64) float64 {
	return rad * 180.0 / π
}

// earthRadii returns the meridional (north-south) and normal (east-west)
// radii of curvature at the location's latitude.
func (l Location) earthRadii() (r1, r2 float64) {
	s := EarthEccen * math.Sin(l.Lat)
	r1 = EarthRadius * (1 - EarthEccen*EarthEccen) / math.Pow(1-s*s, 1.5)
	r2 = EarthRadius / math.Sqrt(1-s*s)
	return r1, r2
}

// DistanceTo returns the flat-earth displacement from l to loc. A non-zero
// frameAngle rotates the result clockwise by that angle, which expresses the
// displacement in the frame of a vehicle with that heading instead of true
// north.
func (l Location) DistanceTo(loc Location, frameAngle float64) Distance {
	r1, r2 := l.earthRadii()

	d := Distance{
		X: r2 * math.Cos(l.Lat) * (loc.Lon - l.Lon),
		Y: r1 * (loc.Lat - l.Lat),
		Z: loc.Alt - l.Alt,
	}

	if frameAngle != 0 {
		d = d.Transform(frameAngle)
	}

	return d
}

// Offset returns the location reached by traveling d from l. It is the
// inverse of DistanceTo under the same flat-earth approximation, so
// l.Offset(l.DistanceTo(loc, 0)) reproduces loc.
func (l Location) Offset(d Distance) Location {
	r1, r2 := l.earthRadii()

	return Location{
		Lat: l.Lat + d.Y/r1,
		Lon: l.Lon + d.X/(r2*math.Cos(l.Lat)),
		Alt: l.Alt + d.Z,
	}
}

// BearingTo returns the initial great-circle bearing from l to loc in
// [0, 2π). It does not depend on the flat-earth model.
func (l Location) BearingTo(loc Location) float64 {
	Δλ := loc.Lon - l.Lon

	y := math.Sin(Δλ) * math.Cos(loc.Lat)
	x := math.Cos(l.Lat)*math.Sin(loc.Lat) - math.Sin(l.Lat)*math.Cos(loc.Lat)*math.Cos(Δλ)

	return wrap2π(math.Atan2(y, x))
}
