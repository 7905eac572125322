// Package integrator implements the geodesic ray marcher: per pixel it
// bends a ray through an inverse-square approximation of Schwarzschild
// curvature, detects disk-plane crossings, composites disk and background
// contributions front to back and terminates deterministically under a
// hard iteration budget.
package integrator

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/background"
	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

// Terminal classification of a traced ray. Every ray ends in exactly one
// of these; none of them is an error.
type State int

const (
	StateMarching State = iota // Loop still running; never returned from Trace
	StateCaptured              // Crossed inside 1.01x the event horizon
	StateEscaped               // Left the scene boundary or exhausted the budget
	StateOpaque                // Accumulated opacity reached the cutoff
)

func (s State) String() string {
	switch s {
	case StateMarching:
		return "marching"
	case StateCaptured:
		return "captured"
	case StateEscaped:
		return "escaped"
	case StateOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Calibration constants. Visual tuning depends on these exact values;
// they are deliberately not derived from the Schwarzschild metric.
const (
	maxSteps      = 64   // Hard iteration budget, guarantees termination
	captureFactor = 1.01 // Capture inside captureFactor * eventHorizonRadius
	escapeRadius  = 100.0
	opacityCutoff = 0.99
	renderGamma   = 2.2
)

// Geodesic traces rays through the curved-spacetime approximation.
// Immutable after construction; safe for concurrent use from every
// render worker.
type Geodesic struct {
	params *scene.Params
	bg     *background.Field
}

// NewGeodesic creates an integrator for the given parameter set
func NewGeodesic(params *scene.Params) *Geodesic {
	return &Geodesic{
		params: params,
		bg:     background.New(params.Background),
	}
}

// TraceResult carries the final pixel color plus the diagnostics the
// renderer aggregates into frame statistics.
type TraceResult struct {
	Color    core.Vec3 // Gamma-corrected, all channels in [0,1]
	State    State
	Steps    int
	Opacity  float64
	DiskHits int
	FinalDir core.Vec3 // Bent direction at termination, drives background lensing
}

// RayColor traces a ray and returns the final pixel color
func (g *Geodesic) RayColor(ray core.Ray, elapsed float64) core.Vec3 {
	return g.Trace(ray, elapsed).Color
}

// Trace marches a single ray to termination.
//
// The ray state lives entirely on this stack frame: position, direction,
// accumulated color and opacity are locals, mutated each iteration and
// discarded on return. Nothing is shared between invocations.
func (g *Geodesic) Trace(ray core.Ray, elapsed float64) TraceResult {
	horizonR := g.params.EventHorizonRadius()

	pos := ray.Origin
	dir := ray.Direction.Normalize()
	color := core.NewVec3(0, 0, 0)
	opacity := 0.0
	captured := false
	escaped := false
	steps := 0
	diskHits := 0

	for i := 0; i < maxSteps; i++ {
		if captured || escaped || opacity >= opacityCutoff {
			break
		}
		steps = i + 1

		r := pos.Length()
		if r < captureFactor*horizonR {
			captured = true
			break
		}
		if r > escapeRadius {
			escaped = true
			break
		}

		// Adaptive step: shrink to 0.2x near the horizon, full size from
		// 5 horizon radii out. Concentrates angular resolution where the
		// bending per unit length is highest.
		proximity := core.Smoothstep(1.0, 5.0, r/math.Max(horizonR, 1e-6))
		step := g.params.StepSize * (0.2 + 0.8*proximity)

		// Inverse-square bend toward the center, then renormalize.
		// First-order approximation, not a metric integration.
		toCenter := pos.Multiply(-1.0 / r)
		bend := horizonR / math.Max(r*r, 1e-9) * step * g.params.LensingStrength
		dir = dir.Add(toCenter.Multiply(bend)).Normalize()

		prev := pos
		pos = pos.Add(dir.Multiply(step))

		// Disk-plane crossing: the y=0 plane was straddled this step
		if prev.Y*pos.Y < 0 && opacity < opacityCutoff {
			t := prev.Y / (prev.Y - pos.Y)
			hit := prev.Lerp(pos, t)
			hitR := math.Hypot(hit.X, hit.Z)

			if hitR >= g.params.Disk.InnerRadius && hitR < g.params.Disk.OuterRadius {
				phi := math.Atan2(hit.Z, hit.X)
				hitColor, hitAlpha := g.params.Disk.Shade(hitR, phi, elapsed, dir)

				// Front-to-back compositing
				remaining := 1.0 - opacity
				color = color.Add(hitColor.Multiply(hitAlpha * remaining))
				opacity += remaining * hitAlpha
				diskHits++
			}
		}
	}

	// A ray that exhausts the budget without capture is escaped, not an error
	if !captured {
		escaped = true
	}

	state := StateEscaped
	switch {
	case captured:
		state = StateCaptured
	case opacity >= opacityCutoff:
		state = StateOpaque
	}

	// Escaped rays see the background along their final bent direction;
	// that bending is what lenses the star field around the shadow.
	if escaped && opacity < opacityCutoff {
		bgColor := g.bg.Sample(dir)
		color = color.Add(bgColor.Multiply(1.0 - opacity))
	}

	return TraceResult{
		Color:    color.Clamp(0, 1).GammaCorrect(renderGamma),
		State:    state,
		Steps:    steps,
		Opacity:  opacity,
		DiskHits: diskHits,
		FinalDir: dir,
	}
}

// BackgroundColor exposes the background evaluation for a direction,
// through the same clamp and gamma as a traced pixel
func (g *Geodesic) BackgroundColor(dir core.Vec3) core.Vec3 {
	return g.bg.Sample(dir.Normalize()).Clamp(0, 1).GammaCorrect(renderGamma)
}
