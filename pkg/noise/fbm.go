package noise

import (
	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// fbmOctaves is fixed: four octaves is enough structure for both the disk
// turbulence and the nebula layers, and the cost is paid per ray step.
const fbmOctaves = 4

// FBM combines four octaves of signed value noise into a fractal field.
// Each octave remaps Value3D from [0,1) to [-1,1), so the sum lands in
// roughly [-1, 1] before any rescaling by the caller.
func FBM(p core.Vec3, lacunarity, persistence float64) float64 {
	sum := 0.0
	amplitude := 0.5
	pos := p

	for i := 0; i < fbmOctaves; i++ {
		sum += amplitude * (Value3D(pos)*2.0 - 1.0)
		pos = pos.Multiply(lacunarity)
		amplitude *= persistence
	}

	return sum
}
