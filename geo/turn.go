package geo

import "math"

// The turn solver models a vehicle that cannot fly directly to a waypoint:
// it first turns along a circle of its minimum turning radius, then flies a
// straight tangent segment the rest of the way. Everything is computed in
// the vehicle frame, where X is to the vehicle's right and Y straight ahead.
//
// The turning radius must be strictly positive. That is a caller
// precondition: a zero radius divides by zero below and the solver does not
// guard against it.

// TurnAngle returns the angle the vehicle at loc with the given heading must
// turn, at the given turning radius, to line up with the waypoint. Negative
// angles are left turns, positive angles right turns.
func TurnAngle(loc Location, heading, radius float64, waypoint Location) float64 {
	d := loc.DistanceTo(waypoint, heading)

	r, a, b := tangentPoint(d.X, d.Y, radius)

	// Magnitude from the wrapped atan2, direction from the signed radius.
	return math.Copysign(wrap2π(math.Atan2(b, math.Abs(r)/r*(r-a))), r)
}

// TurnPoint returns the point, relative to the vehicle at loc, where the
// turn ends and straight flight to the waypoint begins. X and Y locate the
// tangent point in the horizontal plane; Z is the share of the altitude
// difference attributed to the circular portion of the path, proportional to
// its length.
func TurnPoint(loc Location, heading, radius float64, waypoint Location) Distance {
	d := loc.DistanceTo(waypoint, heading)
	i, j, k := d.X, d.Y, d.Z

	r, a, b := tangentPoint(i, j, radius)

	angle := wrap2π(math.Atan2(b, math.Abs(r)/r*(r-a)))

	circ := math.Abs(r) * angle
	lin := math.Sqrt((i-a)*(i-a) + (j-b)*(j-b))

	// Both lengths vanish when the vehicle is already at the tangent
	// point; there is then no arc to assign altitude to.
	c := 0.0
	if circ+lin != 0 {
		c = circ / (circ + lin) * k
	}

	return Distance{X: a, Y: b, Z: c}
}

// tangentPoint picks the turn direction and solves for the point (a, b)
// where the tangent line from the waypoint at (i, j) touches the turning
// circle of radius r centered at (r, 0). The returned r is signed: negative
// means a left turn.
func tangentPoint(i, j, radius float64) (r, a, b float64) {
	r = radius

	// Turn toward the waypoint's side.
	if i < 0 {
		r = -r
	}

	// If the waypoint is inside the turning circle the vehicle can't cut
	// tight enough and would spiral; turn the other way instead.
	if (i-r)*(i-r)+j*j < r*r {
		r = -r
	}

	den := r*r - 2*r*i + i*i + j*j
	disc := i*i - 2*r*i + j*j

	// The closed form is singular when the waypoint needs no turn at all
	// or a turn of exactly π. The guarded fallback replaces the
	// divide-by-zero / negative root the expression would produce there.
	if den == 0 || disc < 0 {
		if math.Abs(i) < math.Abs(r) {
			a = 0
		} else {
			a = 2 * r
		}
		return r, a, 0
	}

	a = (r*i*i - r*r*i + r*j*j - r*j*math.Sqrt(disc)) / den

	b = math.Sqrt(r*r - (a-r)*(a-r))
	if (j < 0 && math.Abs(i) < 2*math.Abs(r)) || i/r < 0 {
		b = -b
	}

	return r, a, b
}
