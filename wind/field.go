// Package wind loads 10 m wind fields from GRIB2 forecast files and
// interpolates them to a position and time. The simulator uses them for
// drift; the API exposes them directly.
package wind

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/nilsmagnus/grib/griblib"
)

// Field is one forecast wind field: the U and V components of the 10 m wind
// on a regular lat/lon grid, valid at Date.
type Field struct {
	Date time.Time
	File string
	Lat0 float64
	Lon0 float64
	ΔLat float64
	ΔLon float64
	NLat uint32
	NLon uint32
	U    [][]float64
	V    [][]float64
}

// Load reads the 10 m wind messages out of a GRIB2 file.
func Load(dir string, date time.Time, file string) (Field, error) {
	f := Field{Date: date, File: file}

	gribfile, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		return f, err
	}
	defer gribfile.Close()

	messages, err := griblib.ReadMessages(gribfile)
	if err != nil {
		return f, err
	}

	for _, message := range messages {
		if message.Section0.Discipline != 0 ||
			message.Section4.ProductDefinitionTemplate.ParameterCategory != 2 ||
			message.Section4.ProductDefinitionTemplate.FirstSurface.Type != 103 ||
			message.Section4.ProductDefinitionTemplate.FirstSurface.Value != 10 {
			continue
		}

		grid0, ok := message.Section3.Definition.(*griblib.Grid0)
		if !ok {
			continue
		}
		f.Lat0 = float64(grid0.La1 / 1e6)
		f.Lon0 = float64(grid0.Lo1 / 1e6)
		f.ΔLat = float64(grid0.Di / 1e6)
		f.ΔLon = float64(grid0.Dj / 1e6)
		f.NLat = grid0.Nj
		f.NLon = grid0.Ni

		switch message.Section4.ProductDefinitionTemplate.ParameterNumber {
		case 2:
			f.U = f.buildGrid(message.Section7.Data)
		case 3:
			f.V = f.buildGrid(message.Section7.Data)
		}
	}

	return f, nil
}

func (f Field) buildGrid(data []float64) [][]float64 {

	// A grid covering all longitudes gets an extra wrap column so that
	// interpolation never indexes past the seam.
	isContinuous := math.Floor(float64(f.NLon)*f.ΔLon) >= 360

	nLon := f.NLon
	if isContinuous {
		nLon++
	}

	grid := make([][]float64, f.NLat)

	p := 0
	for j := uint32(0); j < f.NLat; j++ {
		grid[j] = make([]float64, nLon)
		for i := uint32(0); i < f.NLon; i++ {
			grid[j][i] = data[p]
			p++
		}
		if isContinuous {
			grid[j][f.NLon] = grid[j][0]
		}
	}

	return grid
}

func floorMod(a float64, n float64) float64 {
	return a - n*math.Floor(a/n)
}

func bilinear(x, y float64, g00, g10, g01, g11 [2]float64) (float64, float64) {
	rx := 1 - x
	ry := 1 - y

	a := rx * ry
	b := x * ry
	c := rx * y
	d := x * y

	u := g00[0]*a + g10[0]*b + g01[0]*c + g11[0]*d
	v := g00[1]*a + g10[1]*b + g01[1]*c + g11[1]*d

	return u, v
}

// UV bilinearly interpolates the wind components at lat/lon degrees.
func (f Field) UV(lat, lon float64) (float64, float64) {
	i := math.Abs((lat - f.Lat0) / f.ΔLat)
	j := floorMod(lon-f.Lon0, 360.0) / f.ΔLon

	fi := uint32(i)
	fj := uint32(j)

	return bilinear(j-float64(fj), i-float64(fi),
		[2]float64{f.U[fi][fj], f.V[fi][fj]},
		[2]float64{f.U[fi][fj+1], f.V[fi][fj+1]},
		[2]float64{f.U[fi+1][fj], f.V[fi+1][fj]},
		[2]float64{f.U[fi+1][fj+1], f.V[fi+1][fj+1]})
}

// DirectionAndSpeed converts U/V components into the meteorological
// direction the wind blows from, in degrees, and its speed in m/s.
func DirectionAndSpeed(u, v float64) (float64, float64) {
	speed := math.Sqrt(u*u + v*v)
	if speed == 0 {
		return 0, 0
	}

	dir := math.Atan2(u/speed, v/speed)*180/math.Pi + 180
	if dir >= 360 {
		dir -= 360
	}

	return dir, speed
}
