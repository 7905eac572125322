// Package physics implements the emission models of the accretion disk:
// the blackbody temperature-to-color approximation and the disk shading
// model (power-law temperature, Doppler beaming, turbulent ring opacity).
package physics

import (
	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// Blackbody temperature range covered by the approximation, in Kelvin.
const (
	blackbodyMinK = 1000.0
	blackbodyMaxK = 10000.0
)

// Blackbody maps a temperature in Kelvin to an approximate RGB emission
// color. This is a visual fit over 1000-10000K, not a spectral radiance
// integral: red stays high and tapers only at the hot extreme, green rises
// through the middle of the range, blue only appears in the upper half.
// Dependent calibration (disk temperature defaults, the 1500K floor)
// assumes exactly this curve.
func Blackbody(tempK float64) core.Vec3 {
	t := core.Clamp01((tempK - blackbodyMinK) / (blackbodyMaxK - blackbodyMinK))

	r := core.Clamp(1.0-2.0*max(t-0.8, 0.0), 0.5, 1.0)
	g := core.Smoothstep(0.2, 0.8, t) - 0.2*core.Smoothstep(0.7, 1.0, t)
	b := core.Smoothstep(0.3, 1.0, t) * t

	return core.NewVec3(r, core.Clamp01(g), core.Clamp01(b))
}
