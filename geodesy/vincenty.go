package geodesy

import (
	"math"

	"github.com/uavaustin/geo-distance/geo"
)

// WGS84 ellipsoid.
const (
	wgs84A = 6378137.0
	wgs84B = 6356752.314245
	wgs84F = 1 / 298.257223563
)

// Vincenty solves the geodesic inverse and direct problems on the WGS84
// ellipsoid, accurate to well under a millimeter where the iteration
// converges. Nearly antipodal pairs may fail to converge; the last iterate
// is used then, which is the textbook behavior short of switching to a
// different algorithm.
type Vincenty struct{}

const (
	vincentyTolerance = 1e-12
	vincentyMaxIter   = 200
)

func (Vincenty) DistanceAndBearingTo(from, to geo.Location) (float64, float64) {
	L := to.Lon - from.Lon
	U1 := math.Atan((1 - wgs84F) * math.Tan(from.Lat))
	U2 := math.Atan((1 - wgs84F) * math.Tan(to.Lat))

	sinU1, cosU1 := math.Sincos(U1)
	sinU2, cosU2 := math.Sincos(U2)

	λ := L
	var sinλ, cosλ, sinσ, cosσ, σ, sinα, cos2α, cos2σm float64

	for iter := 0; iter < vincentyMaxIter; iter++ {
		sinλ, cosλ = math.Sincos(λ)

		sinσ = math.Sqrt(math.Pow(cosU2*sinλ, 2) +
			math.Pow(cosU1*sinU2-sinU1*cosU2*cosλ, 2))
		if sinσ == 0 {
			// Coincident points.
			return 0, 0
		}
		cosσ = sinU1*sinU2 + cosU1*cosU2*cosλ
		σ = math.Atan2(sinσ, cosσ)

		sinα = cosU1 * cosU2 * sinλ / sinσ
		cos2α = 1 - sinα*sinα

		cos2σm = 0
		if cos2α != 0 {
			// Equatorial lines have cos²α = 0.
			cos2σm = cosσ - 2*sinU1*sinU2/cos2α
		}

		C := wgs84F / 16 * cos2α * (4 + wgs84F*(4-3*cos2α))
		λPrev := λ
		λ = L + (1-C)*wgs84F*sinα*
			(σ+C*sinσ*(cos2σm+C*cosσ*(-1+2*cos2σm*cos2σm)))

		if math.Abs(λ-λPrev) < vincentyTolerance {
			break
		}
	}

	u2 := cos2α * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
	A := 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	B := u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))

	Δσ := B * sinσ * (cos2σm + B/4*
		(cosσ*(-1+2*cos2σm*cos2σm)-
			B/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*cos2σm*cos2σm)))

	d := wgs84B * A * (σ - Δσ)

	α1 := math.Atan2(cosU2*sinλ, cosU1*sinU2-sinU1*cosU2*cosλ)
	if α1 < 0 {
		α1 += 2 * math.Pi
	}

	return d, α1
}

func (Vincenty) Destination(from geo.Location, bearing, distance float64) geo.Location {
	sinα1, cosα1 := math.Sincos(bearing)

	tanU1 := (1 - wgs84F) * math.Tan(from.Lat)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	σ1 := math.Atan2(tanU1, cosα1)
	sinα := cosU1 * sinα1
	cos2α := 1 - sinα*sinα

	u2 := cos2α * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
	A := 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	B := u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))

	σ := distance / (wgs84B * A)
	var sinσ, cosσ, cos2σm float64

	for iter := 0; iter < vincentyMaxIter; iter++ {
		cos2σm = math.Cos(2*σ1 + σ)
		sinσ, cosσ = math.Sincos(σ)

		Δσ := B * sinσ * (cos2σm + B/4*
			(cosσ*(-1+2*cos2σm*cos2σm)-
				B/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*cos2σm*cos2σm)))

		σPrev := σ
		σ = distance/(wgs84B*A) + Δσ

		if math.Abs(σ-σPrev) < vincentyTolerance {
			break
		}
	}

	tmp := sinU1*sinσ - cosU1*cosσ*cosα1
	φ2 := math.Atan2(sinU1*cosσ+cosU1*sinσ*cosα1,
		(1-wgs84F)*math.Sqrt(sinα*sinα+tmp*tmp))

	λ := math.Atan2(sinσ*sinα1, cosU1*cosσ-sinU1*sinσ*cosα1)
	C := wgs84F / 16 * cos2α * (4 + wgs84F*(4-3*cos2α))
	L := λ - (1-C)*wgs84F*sinα*
		(σ+C*sinσ*(cos2σm+C*cosσ*(-1+2*cos2σm*cos2σm)))

	return geo.Location{Lat: φ2, Lon: from.Lon + L, Alt: from.Alt}
}
