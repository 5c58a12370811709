package geodesy

import (
	"math"
	"testing"

	"github.com/uavaustin/geo-distance/geo"
)

var models = map[string]Model{
	"flat-earth": FlatEarth{},
	"haversine":  Haversine{},
	"spherical":  Spherical{},
	"vincenty":   Vincenty{},
}

func TestByName(t *testing.T) {
	for name := range models {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%s) returned error: %v", name, err)
		}
	}
	if _, err := ByName(""); err != nil {
		t.Errorf("ByName(\"\") returned error: %v", err)
	}
	if _, err := ByName("dead-reckoning"); err == nil {
		t.Error("ByName(dead-reckoning) = nil error; want an error")
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	origin := geo.Location{Lat: geo.Radians(30.2849), Lon: geo.Radians(-97.7341)}

	for name, m := range models {
		for _, c := range []struct{ bearing, distance float64 }{
			{0, 1000},
			{geo.Radians(45), 5000},
			{geo.Radians(135), 12000},
			{geo.Radians(280), 700},
		} {
			dest := m.Destination(origin, c.bearing, c.distance)
			d, b := m.DistanceAndBearingTo(origin, dest)

			// The law-of-cosines backend loses precision at short
			// range, hence the absolute half-meter floor.
			if math.Abs(d-c.distance) > 0.5 {
				t.Errorf("%s: distance to Destination(%f, %f) = %f; want %f",
					name, c.bearing, c.distance, d, c.distance)
			}
			if math.Abs(b-c.bearing) > 1e-4 {
				t.Errorf("%s: bearing to Destination(%f, %f) = %f; want %f",
					name, c.bearing, c.distance, b, c.bearing)
			}
		}
	}
}

func TestModelsAgreeAtShortRange(t *testing.T) {
	origin := geo.Location{Lat: geo.Radians(30.2849), Lon: geo.Radians(-97.7341)}
	target := geo.Location{Lat: geo.Radians(30.3549), Lon: geo.Radians(-97.6641)}

	ref, _ := Haversine{}.DistanceAndBearingTo(origin, target)

	for name, m := range models {
		d, _ := m.DistanceAndBearingTo(origin, target)
		if math.Abs(d-ref)/ref > 0.01 {
			t.Errorf("%s distance = %f; want within 1%% of %f", name, d, ref)
		}
	}
}

func TestHaversineEquator(t *testing.T) {
	a := geo.Location{Lat: 0, Lon: 0}
	b := geo.Location{Lat: 0, Lon: geo.Radians(1)}

	d, brg := Haversine{}.DistanceAndBearingTo(a, b)

	want := geo.EarthRadius * geo.Radians(1)
	if math.Abs(d-want) > 1 {
		t.Errorf("haversine equator distance = %f; want %f", d, want)
	}
	if math.Abs(brg-math.Pi/2) > 1e-9 {
		t.Errorf("haversine equator bearing = %f; want π/2", brg)
	}
}

func TestVincentyFixtures(t *testing.T) {
	// One degree of longitude along the equator is exactly a·π/180 on the
	// ellipsoid; one degree of latitude along a meridian is the meridian
	// arc, noticeably shorter.
	equator0 := geo.Location{Lat: 0, Lon: 0}
	equator1 := geo.Location{Lat: 0, Lon: geo.Radians(1)}

	d, brg := Vincenty{}.DistanceAndBearingTo(equator0, equator1)
	if math.Abs(d-111319.491) > 0.01 {
		t.Errorf("vincenty equator distance = %f; want 111319.491", d)
	}
	if math.Abs(brg-math.Pi/2) > 1e-9 {
		t.Errorf("vincenty equator bearing = %f; want π/2", brg)
	}

	meridian1 := geo.Location{Lat: geo.Radians(1), Lon: 0}
	d, brg = Vincenty{}.DistanceAndBearingTo(equator0, meridian1)
	if math.Abs(d-110574.4) > 1 {
		t.Errorf("vincenty meridian distance = %f; want 110574.4", d)
	}
	if math.Abs(brg) > 1e-9 {
		t.Errorf("vincenty meridian bearing = %f; want 0", brg)
	}

	if d, _ := (Vincenty{}).DistanceAndBearingTo(equator0, equator0); d != 0 {
		t.Errorf("vincenty coincident distance = %f; want 0", d)
	}
}
