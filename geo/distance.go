package geo

import "math"

const π = math.Pi

// Distance is a displacement between two points in vector form, in meters,
// expressed in a local tangent plane: X grows eastward, Y northward and Z
// upward. The zero value is the null displacement. A purely horizontal
// displacement is a Distance with Z = 0; there is no separate 2D type.
//
// All operations return a new Distance, operands are never modified.
type Distance struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromMagnitudeBearing builds the Distance of the given magnitude in the
// horizontal plane along a compass bearing (radians, clockwise from north),
// with a vertical component of alt meters.
func FromMagnitudeBearing(magnitude, bearing, alt float64) Distance {
	return Distance{
		X: magnitude * math.Sin(bearing),
		Y: magnitude * math.Cos(bearing),
		Z: alt,
	}
}

func (d Distance) Add(o Distance) Distance {
	return Distance{X: d.X + o.X, Y: d.Y + o.Y, Z: d.Z + o.Z}
}

func (d Distance) Sub(o Distance) Distance {
	return Distance{X: d.X - o.X, Y: d.Y - o.Y, Z: d.Z - o.Z}
}

func (d Distance) Scale(f float64) Distance {
	return Distance{X: d.X * f, Y: d.Y * f, Z: d.Z * f}
}

// Magnitude is the euclidean norm over all three components.
func (d Distance) Magnitude() float64 {
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// MagnitudeXY is the norm of the horizontal components only, for planar
// geometry where altitude must not contribute.
func (d Distance) MagnitudeXY() float64 {
	return math.Sqrt(d.X*d.X + d.Y*d.Y)
}

// Transform rotates the horizontal components clockwise by angle radians
// about the Z axis. Z is unchanged.
func (d Distance) Transform(angle float64) Distance {
	return Distance{
		X: d.X*math.Cos(angle) - d.Y*math.Sin(angle),
		Y: d.X*math.Sin(angle) + d.Y*math.Cos(angle),
		Z: d.Z,
	}
}

// Bearing is the compass bearing of the horizontal components, in [0, 2π).
func (d Distance) Bearing() float64 {
	return wrap2π(math.Atan2(d.X, d.Y))
}

func wrap2π(a float64) float64 {
	a = math.Mod(a, 2*π)
	if a < 0 {
		a += 2 * π
	}
	return a
}
