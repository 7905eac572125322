// Package background renders the procedural deep field behind the black
// hole: a grid-hashed star field, two additive FBM nebula layers, and an
// optional simplex dust layer darkening the nebulae. Everything is a pure
// function of the ray direction, so the field is stable under camera
// motion and independent of elapsed time.
package background

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/noise"
)

// Nebula octave shaping is fixed; per-layer variation comes from scale,
// density bias, brightness and color instead.
const (
	nebulaLacunarity  = 2.0
	nebulaPersistence = 0.5
)

// Star sprite geometry in cell-local units. Glow extends to 3x the core
// radius at 0.3 weight.
const (
	starCoreRadius = 0.08
	starGlowWeight = 0.3
)

// Star color temperature endpoints
var (
	starBlueWhite   = core.NewVec3(0.7, 0.8, 1.0)
	starYellowWhite = core.NewVec3(1.0, 0.9, 0.7)
)

// NebulaLayer configures one additive nebula cloud layer.
type NebulaLayer struct {
	Scale      float64   `json:"scale"`   // Direction-space frequency
	Density    float64   `json:"density"` // Bias added to FBM before clamping
	Brightness float64   `json:"brightness"`
	Color      core.Vec3 `json:"color"`
}

// DustParams configures the optional extinction layer. Unlike the star and
// nebula fields this one rides on seeded simplex noise, so equal seeds
// reproduce equal skies.
type DustParams struct {
	Seed    int64   `json:"seed"`
	Scale   float64 `json:"scale"`
	Density float64 `json:"density"` // 0 = fully transparent, 1 = full extinction
	Octaves int     `json:"octaves"`
}

// Params configures the full background field.
type Params struct {
	StarsEnabled   bool    `json:"starsEnabled"`
	StarDensity    float64 `json:"starDensity"` // Fraction of grid cells holding a star
	StarSize       float64 `json:"starSize"`    // Larger size means a coarser grid: fewer, bigger stars
	StarBrightness float64 `json:"starBrightness"`

	NebulaEnabled bool           `json:"nebulaEnabled"`
	NebulaLayers  [2]NebulaLayer `json:"nebulaLayers"`

	DustEnabled bool       `json:"dustEnabled"`
	Dust        DustParams `json:"dust"`
}

// Field is an immutable, concurrency-safe background sampler built from a
// parameter set. The simplex generator is read-only after construction.
type Field struct {
	params Params
	dust   opensimplex.Noise
}

// New creates a background field for the given parameters
func New(params Params) *Field {
	f := &Field{params: params}
	if params.DustEnabled {
		f.dust = opensimplex.NewNormalized(params.Dust.Seed)
	}
	return f
}

// Sample evaluates the background color for a unit ray direction
func (f *Field) Sample(dir core.Vec3) core.Vec3 {
	result := core.NewVec3(0, 0, 0)

	if f.params.NebulaEnabled {
		nebula := f.nebula(dir)
		if f.dust != nil {
			nebula = nebula.Multiply(f.dustExtinction(dir))
		}
		result = result.Add(nebula)
	}

	if f.params.StarsEnabled {
		result = result.Add(f.starField(dir))
	}

	return result
}

// starField hashes a 2D angular grid over the sky and draws a point sprite
// in each occupied cell: a bright core plus a dimmer glow, tinted by a
// hashed blend between blue-white and yellow-white.
func (f *Field) starField(dir core.Vec3) core.Vec3 {
	azimuth := math.Atan2(dir.Z, dir.X)
	// Clamp before asin: renormalization drift can push |Y| past 1
	elevation := math.Asin(core.Clamp(dir.Y, -1, 1))

	size := math.Max(f.params.StarSize, 0.1)
	gridScale := 40.0 / size

	u := azimuth * gridScale
	v := elevation * gridScale
	cellX, cellY := math.Floor(u), math.Floor(v)
	fracX, fracY := u-cellX, v-cellY

	// Cell hash decides star presence against the density threshold
	if noise.Hash21(cellX, cellY) >= f.params.StarDensity {
		return core.NewVec3(0, 0, 0)
	}

	// Second hash places the star center away from cell borders
	hx, hy := noise.Hash22(cellX, cellY)
	centerX := 0.2 + 0.6*hx
	centerY := 0.2 + 0.6*hy

	dist := math.Hypot(fracX-centerX, fracY-centerY)

	coreIntensity := 1.0 - core.Smoothstep(0, starCoreRadius, dist)
	glowIntensity := starGlowWeight * (1.0 - core.Smoothstep(0, starCoreRadius*3, dist))
	intensity := (coreIntensity + glowIntensity) * f.params.StarBrightness

	warmth := noise.Hash21(cellX+57.0, cellY+113.0)
	tint := starBlueWhite.Lerp(starYellowWhite, warmth)

	return tint.Multiply(intensity)
}

// nebula sums the two cloud layers additively, with no occlusion between
// them. Each layer remaps FBM to a clamped density via its bias.
func (f *Field) nebula(dir core.Vec3) core.Vec3 {
	sum := core.NewVec3(0, 0, 0)

	for _, layer := range f.params.NebulaLayers {
		p := dir.Multiply(layer.Scale)
		density := core.Clamp01(noise.FBM(p, nebulaLacunarity, nebulaPersistence) + layer.Density)
		sum = sum.Add(layer.Color.Multiply(density * layer.Brightness))
	}

	return sum
}

// dustExtinction returns the transmission factor of the dust layer in
// [0, 1], built from octave simplex noise over the ray direction.
func (f *Field) dustExtinction(dir core.Vec3) float64 {
	octaves := f.params.Dust.Octaves
	if octaves < 1 {
		octaves = 1
	}

	frequency := math.Max(f.params.Dust.Scale, 1e-3)
	amplitude := 1.0
	total := 0.0
	maxTotal := 0.0

	for i := 0; i < octaves; i++ {
		total += f.dust.Eval3(dir.X*frequency, dir.Y*frequency, dir.Z*frequency) * amplitude
		maxTotal += amplitude
		frequency *= 2.0
		amplitude *= 0.5
	}

	density := core.Clamp01(total / maxTotal * f.params.Dust.Density)
	return 1.0 - density
}
