// Package noise provides the deterministic hash, value-noise and fractal
// primitives behind the disk turbulence and the procedural background.
// Every function here is a pure function of its inputs: no tables, no
// seeds, no state. That is what makes per-pixel evaluation trivially
// parallel and bit-reproducible.
package noise

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// Hash constants shared by all variants. The irrational dot products keep
// axis-aligned inputs from lining up with the sine period.
const (
	hashScale = 43758.5453123
	hashKx    = 127.1
	hashKy    = 311.7
	hashKz    = 74.7
	hashK2x   = 269.5
	hashK2y   = 183.3
)

func fract(v float64) float64 {
	return v - math.Floor(v)
}

// Hash21 hashes a 2D coordinate to a scalar in [0, 1)
func Hash21(x, y float64) float64 {
	return fract(math.Sin(x*hashKx+y*hashKy) * hashScale)
}

// Hash22 hashes a 2D coordinate to two independent scalars in [0, 1)
func Hash22(x, y float64) (float64, float64) {
	a := fract(math.Sin(x*hashKx+y*hashKy) * hashScale)
	b := fract(math.Sin(x*hashK2x+y*hashK2y) * hashScale)
	return a, b
}

// Hash31 hashes a 3D coordinate to a scalar in [0, 1)
func Hash31(p core.Vec3) float64 {
	return fract(math.Sin(p.X*hashKx+p.Y*hashKy+p.Z*hashKz) * hashScale)
}

// smootherstep is the quintic fade curve 6t^5 - 15t^4 + 10t^3.
// Zero first and second derivative at both ends, so cell boundaries
// never show up as creases in the interpolated field.
func smootherstep(t float64) float64 {
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}

// Value2D returns smooth value noise in [0, 1) for a 2D coordinate
func Value2D(x, y float64) float64 {
	ix, iy := math.Floor(x), math.Floor(y)
	fx, fy := x-ix, y-iy

	v00 := Hash21(ix, iy)
	v10 := Hash21(ix+1, iy)
	v01 := Hash21(ix, iy+1)
	v11 := Hash21(ix+1, iy+1)

	ux := smootherstep(fx)
	uy := smootherstep(fy)

	bottom := core.LerpFloat(v00, v10, ux)
	top := core.LerpFloat(v01, v11, ux)
	return core.LerpFloat(bottom, top, uy)
}

// Value3D returns smooth value noise in [0, 1) for a 3D coordinate
func Value3D(p core.Vec3) float64 {
	ip := core.NewVec3(math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z))
	fp := p.Subtract(ip)

	ux := smootherstep(fp.X)
	uy := smootherstep(fp.Y)
	uz := smootherstep(fp.Z)

	// Hash the eight cube corners and blend trilinearly
	v000 := Hash31(ip)
	v100 := Hash31(ip.Add(core.NewVec3(1, 0, 0)))
	v010 := Hash31(ip.Add(core.NewVec3(0, 1, 0)))
	v110 := Hash31(ip.Add(core.NewVec3(1, 1, 0)))
	v001 := Hash31(ip.Add(core.NewVec3(0, 0, 1)))
	v101 := Hash31(ip.Add(core.NewVec3(1, 0, 1)))
	v011 := Hash31(ip.Add(core.NewVec3(0, 1, 1)))
	v111 := Hash31(ip.Add(core.NewVec3(1, 1, 1)))

	x00 := core.LerpFloat(v000, v100, ux)
	x10 := core.LerpFloat(v010, v110, ux)
	x01 := core.LerpFloat(v001, v101, ux)
	x11 := core.LerpFloat(v011, v111, ux)

	y0 := core.LerpFloat(x00, x10, uy)
	y1 := core.LerpFloat(x01, x11, uy)
	return core.LerpFloat(y0, y1, uz)
}
