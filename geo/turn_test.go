package geo

import (
	"math"
	"testing"
)

// relativeWaypoint places a waypoint at the vehicle-frame offset (i, j, k)
// from a vehicle at origin with the given heading.
func relativeWaypoint(origin Location, heading, i, j, k float64) Location {
	world := Distance{X: i, Y: j, Z: k}.Transform(-heading)
	return origin.Offset(world)
}

var testOrigin = Location{Lat: Radians(30.2849), Lon: Radians(-97.7341), Alt: 300}

func TestTurnAngleZeroTurn(t *testing.T) {
	wp := relativeWaypoint(testOrigin, 0, 0, 500, 0)

	angle := TurnAngle(testOrigin, 0, 100, wp)
	if math.Abs(angle) > 1e-9 {
		t.Errorf("TurnAngle(dead ahead) = %f; want 0", angle)
	}

	p := TurnPoint(testOrigin, 0, 100, wp)
	if math.Abs(p.X) > 1e-6 || math.Abs(p.Y) > 1e-6 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("TurnPoint(dead ahead) = %v; want {0 0 0}", p)
	}
}

func TestTurnAngleRightAbeam(t *testing.T) {
	// Waypoint 200 m directly to the right with R = 100: the vehicle flies
	// a half circle and arrives near the rim point (2R, 0). i = 2R sits
	// exactly on the feasibility boundary, and the flat-earth round trip
	// through the waypoint's coordinates carries nanometer noise that can
	// land on either side of it, so the fixture stands a hair outside the
	// circle and the expectations carry the matching slack.
	wp := relativeWaypoint(testOrigin, 0, 200.000001, 0, 0)

	angle := TurnAngle(testOrigin, 0, 100, wp)
	if angle <= 0 {
		t.Errorf("TurnAngle(200 m right) = %f; want a right turn", angle)
	}
	if math.Abs(angle-π) > 1e-3 {
		t.Errorf("TurnAngle(200 m right) = %f; want ~π", angle)
	}

	p := TurnPoint(testOrigin, 0, 100, wp)
	if math.Abs(p.X-200) > 1e-3 || math.Abs(p.Y) > 0.1 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("TurnPoint(200 m right) = %v; want ~{200 0 0}", p)
	}
	if p.X < 0 || p.X > 2*100 {
		t.Errorf("TurnPoint X = %f; want within [0, 2R]", p.X)
	}
}

func TestTurnAngleHeadingFrame(t *testing.T) {
	// Facing east with the waypoint due north, the geometry is the mirror
	// of the right-abeam case: a half circle to the left. Same boundary
	// fixture, same slack.
	wp := testOrigin.Offset(Distance{Y: 200.000001})

	angle := TurnAngle(testOrigin, π/2, 100, wp)
	if angle >= 0 {
		t.Errorf("TurnAngle(abeam left) = %f; want a left turn", angle)
	}
	if math.Abs(angle+π) > 1e-3 {
		t.Errorf("TurnAngle(abeam left) = %f; want ~-π", angle)
	}
}

func TestTurnAngleFeasibilityFlip(t *testing.T) {
	// The waypoint sits to the right but inside the right-hand turning
	// circle; the solver must turn left the long way round instead of
	// spiraling.
	wp := relativeWaypoint(testOrigin, 0, 50, 0, 0)

	angle := TurnAngle(testOrigin, 0, 100, wp)
	if angle >= 0 {
		t.Errorf("TurnAngle(50 m right, R=100) = %f; want a left turn", angle)
	}
	if math.Abs(angle) <= π {
		t.Errorf("TurnAngle(50 m right, R=100) = %f; want more than a half turn", angle)
	}
	if math.Abs(angle+5.442116) > 1e-5 {
		t.Errorf("TurnAngle(50 m right, R=100) = %f; want -5.442116", angle)
	}
}

func TestTurnAngleSymmetry(t *testing.T) {
	// 200.000001 rather than 200: keep clear of the feasibility boundary,
	// where coordinate round-trip noise could flip one side but not its
	// mirror.
	scenarios := []struct{ i, j float64 }{
		{200.000001, 0},
		{150, 300},
		{50, 0},
		{75, -220},
		{400, -120},
	}

	for _, s := range scenarios {
		right := TurnAngle(testOrigin, 0, 100, relativeWaypoint(testOrigin, 0, s.i, s.j, 0))
		left := TurnAngle(testOrigin, 0, 100, relativeWaypoint(testOrigin, 0, -s.i, s.j, 0))

		if math.Abs(right+left) > 1e-6 {
			t.Errorf("TurnAngle(%f,%f) = %f, mirrored = %f; want negations", s.i, s.j, right, left)
		}

		pr := TurnPoint(testOrigin, 0, 100, relativeWaypoint(testOrigin, 0, s.i, s.j, 0))
		pl := TurnPoint(testOrigin, 0, 100, relativeWaypoint(testOrigin, 0, -s.i, s.j, 0))

		if math.Abs(pr.X+pl.X) > 1e-4 || math.Abs(pr.Y-pl.Y) > 1e-4 {
			t.Errorf("TurnPoint(%f,%f) = %v, mirrored = %v; want X negated, Y unchanged", s.i, s.j, pr, pl)
		}
	}
}

func TestTurnPointAltitudeShare(t *testing.T) {
	// i=100, j=100, k=30 with R=50: tangent point (20, 40), arc angle
	// atan2(40, 30), and the arc gets its length's share of the climb.
	wp := relativeWaypoint(testOrigin, 0, 100, 100, 30)

	angle := TurnAngle(testOrigin, 0, 50, wp)
	if math.Abs(angle-math.Atan2(40, 30)) > 1e-6 {
		t.Errorf("TurnAngle = %f; want %f", angle, math.Atan2(40, 30))
	}

	p := TurnPoint(testOrigin, 0, 50, wp)
	if math.Abs(p.X-20) > 1e-5 || math.Abs(p.Y-40) > 1e-5 {
		t.Errorf("TurnPoint = %v; want {20 40 _}", p)
	}
	if math.Abs(p.Z-9.5033) > 1e-3 {
		t.Errorf("TurnPoint Z = %f; want 9.5033", p.Z)
	}
}

func TestTurnPointAtWaypoint(t *testing.T) {
	// Already on top of the waypoint: no arc, no straight segment, no
	// altitude to apportion.
	angle := TurnAngle(testOrigin, 0, 100, testOrigin)
	if math.Abs(angle) > 1e-9 {
		t.Errorf("TurnAngle(self) = %f; want 0", angle)
	}

	p := TurnPoint(testOrigin, 0, 100, testOrigin)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y) > 1e-9 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("TurnPoint(self) = %v; want {0 0 0}", p)
	}
}

func TestTurnAngleBehind(t *testing.T) {
	// Directly behind at long range: a bit more than a half right turn,
	// then the straight leg back past the circle.
	wp := relativeWaypoint(testOrigin, 0, 0, -500, 0)

	angle := TurnAngle(testOrigin, 0, 100, wp)
	if angle <= π || angle >= 3*π/2 {
		t.Errorf("TurnAngle(behind) = %f; want between π and 3π/2", angle)
	}
}
