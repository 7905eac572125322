package physics

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/noise"
)

// minDiskTemperature is the fixed temperature at the cold outer limit of
// the power-law falloff, in Kelvin.
const minDiskTemperature = 1500.0

// dopplerBeta is the fraction of c assigned to disk material orbiting at
// the inner edge when rotation speed is fully normalized.
const dopplerBeta = 0.3

// DiskParams describes the geometry and appearance of the accretion disk.
// All fields are read-only during a render; the external owner validates
// InnerRadius < OuterRadius.
type DiskParams struct {
	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`

	Temperature        float64 `json:"temperature"` // Peak temperature in thousands of Kelvin
	TemperatureFalloff float64 `json:"temperatureFalloff"`
	Brightness         float64 `json:"brightness"`
	RotationSpeed      float64 `json:"rotationSpeed"`
	DopplerStrength    float64 `json:"dopplerStrength"` // 0 disables beaming

	InnerSoftness float64 `json:"innerSoftness"` // Edge fade widths in normalized radius
	OuterSoftness float64 `json:"outerSoftness"`

	TurbulenceScale     float64 `json:"turbulenceScale"`
	TurbulenceStretch   float64 `json:"turbulenceStretch"`
	TurbulenceSharpness float64 `json:"turbulenceSharpness"`
	CycleTime           float64 `json:"cycleTime"` // Wrap period for the animated pattern, seconds
	Lacunarity          float64 `json:"lacunarity"`
	Persistence         float64 `json:"persistence"`
}

// TemperatureAt returns the disk temperature in Kelvin at the given radius.
// The color temperature follows an independent power law (innerR/hitR)^falloff
// blending from the 1500K floor up to the configured peak.
func (d *DiskParams) TemperatureAt(hitR float64) float64 {
	r := math.Max(hitR, 1e-6)
	tempFalloff := math.Pow(d.InnerRadius/r, d.TemperatureFalloff)
	peakK := d.Temperature * 1000.0
	return core.LerpFloat(minDiskTemperature, peakK, tempFalloff)
}

// Shade evaluates the disk at a plane hit point and returns the emitted
// color and the local opacity contribution. hitR is the planar distance
// from the disk center, phi the azimuthal angle of the hit, rayDir the
// ray's direction of travel at the hit (used for Doppler beaming).
func (d *DiskParams) Shade(hitR, phi, elapsed float64, rayDir core.Vec3) (core.Vec3, float64) {
	span := math.Max(d.OuterRadius-d.InnerRadius, 1e-6)
	normR := core.Clamp01((hitR - d.InnerRadius) / span)

	color := Blackbody(d.TemperatureAt(hitR)).Multiply(d.Brightness)
	if d.DopplerStrength > 0 {
		color = color.Multiply(d.dopplerBoost(hitR, phi, rayDir))
	}

	alpha := d.ringOpacity(hitR, phi, elapsed) * d.edgeFalloff(normR)
	return color, alpha
}

// dopplerBoost approximates relativistic beaming: material orbiting toward
// the observer brightens, material receding dims. Orbital speed falls off
// as 1/sqrt(hitR/innerR), Keplerian-like. Stylized, not exact; the clamp
// to [0.1, 5] bounds the brightness swing.
func (d *DiskParams) dopplerBoost(hitR, phi float64, rayDir core.Vec3) float64 {
	speed := core.Clamp(math.Abs(d.RotationSpeed), 0, 1)
	beta := dopplerBeta * speed / math.Sqrt(math.Max(hitR/d.InnerRadius, 1e-6))

	// Orbital velocity direction, tangent to the disk at the hit angle
	tangent := core.NewVec3(-math.Sin(phi), 0, math.Cos(phi))
	if d.RotationSpeed < 0 {
		tangent = tangent.Negate()
	}

	// Cosine of the angle between the velocity and the direction back
	// toward the observer. rayDir points away from the camera.
	cosTheta := tangent.Dot(rayDir.Negate())

	boost := math.Pow(1.0/(1.0-beta*cosTheta), 3.0*d.DopplerStrength)
	return core.Clamp(boost, 0.1, 5.0)
}

// edgeFalloff fades opacity to zero at both disk boundaries. normR is the
// hit radius normalized to [0,1] across the disk span.
func (d *DiskParams) edgeFalloff(normR float64) float64 {
	innerSoft := math.Max(d.InnerSoftness, 1e-3)
	outerSoft := math.Max(d.OuterSoftness, 1e-3)

	fadeIn := core.Smoothstep(0, innerSoft, normR)
	fadeOut := 1.0 - core.Smoothstep(1.0-outerSoft, 1.0, normR)
	return fadeIn * fadeOut
}

// ringOpacity evaluates the animated turbulent ring pattern.
//
// Differential rotation advances azimuthal phase as time*speed/r^1.5, so a
// pattern driven by raw elapsed time winds up indefinitely and loses
// coherence over long runs. Instead, time is wrapped at CycleTime and the
// turbulence is sampled at both the wrapped time and one full cycle ahead;
// blending between the two by the cycle fraction keeps the animation
// seamless across every wrap at the cost of a second FBM evaluation.
func (d *DiskParams) ringOpacity(hitR, phi, elapsed float64) float64 {
	cycle := math.Max(d.CycleTime, 1e-3)
	cyclicTime := math.Mod(elapsed, cycle)
	blend := cyclicTime / cycle

	// As blend approaches 1 the wrapped sample approaches turbulence(cycle),
	// which is exactly where the ahead sample starts at the next wrap.
	ahead := d.turbulence(hitR, phi, cyclicTime+cycle)
	wrapped := d.turbulence(hitR, phi, cyclicTime)
	turb := core.LerpFloat(ahead, wrapped, blend)

	sharpness := math.Max(d.TurbulenceSharpness, 1e-3)
	return math.Pow(core.Clamp01(turb), sharpness)
}

// turbulence samples the disk FBM at one time basis. The coordinates are
// deliberately anisotropic: the radial axis is scaled by TurbulenceScale
// to produce concentric rings, while the angular axes are compressed by
// the stretch factor to elongate features along the rotation direction.
func (d *DiskParams) turbulence(hitR, phi, timeBasis float64) float64 {
	rotPhi := phi + timeBasis*d.RotationSpeed/math.Pow(math.Max(hitR, 1e-6), 1.5)
	stretch := math.Max(d.TurbulenceStretch, 0.1)

	p := core.NewVec3(
		hitR*d.TurbulenceScale,
		math.Cos(rotPhi)/stretch,
		math.Sin(rotPhi)/stretch,
	)
	return noise.FBM(p, d.Lacunarity, d.Persistence)
}
