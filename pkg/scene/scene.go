// Package scene owns the externally-supplied parameter set: black hole
// physics, disk configuration, background configuration and camera pose.
// The numeric core treats all of it as read-only; validation lives here
// because malformed parameters are a configuration concern, not something
// the integrator handles.
package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/background"
	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/physics"
)

// CameraConfig describes a look-at camera pose
type CameraConfig struct {
	Position core.Vec3 `json:"position"`
	Target   core.Vec3 `json:"target"`
}

// Params is the full parameter set read by one render invocation.
// Constructed once, passed by pointer into every per-pixel evaluation,
// never mutated during a frame.
type Params struct {
	Mass            float64 `json:"mass"`
	LensingStrength float64 `json:"lensingStrength"`
	StepSize        float64 `json:"stepSize"`

	Disk       physics.DiskParams `json:"disk"`
	Background background.Params  `json:"background"`
}

// EventHorizonRadius returns the Schwarzschild radius 2*mass in the
// geometric units used throughout the renderer
func (p *Params) EventHorizonRadius() float64 {
	return 2.0 * p.Mass
}

// Validate checks the preconditions the core assumes but never enforces.
// The integrator stays finite even for invalid parameters, but the output
// is degenerate; callers that accept external input should reject here.
func (p *Params) Validate() error {
	fields := map[string]float64{
		"mass":                p.Mass,
		"lensingStrength":     p.LensingStrength,
		"stepSize":            p.StepSize,
		"disk.innerRadius":    p.Disk.InnerRadius,
		"disk.outerRadius":    p.Disk.OuterRadius,
		"disk.temperature":    p.Disk.Temperature,
		"disk.cycleTime":      p.Disk.CycleTime,
		"disk.lacunarity":     p.Disk.Lacunarity,
		"disk.persistence":    p.Disk.Persistence,
		"background.starSize": p.Background.StarSize,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("parameter %s is not finite: %v", name, v)
		}
	}

	if p.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %v", p.Mass)
	}
	if p.StepSize <= 0 {
		return fmt.Errorf("stepSize must be positive, got %v", p.StepSize)
	}
	if p.Disk.InnerRadius >= p.Disk.OuterRadius {
		return fmt.Errorf("disk innerRadius (%v) must be less than outerRadius (%v)",
			p.Disk.InnerRadius, p.Disk.OuterRadius)
	}
	if p.Disk.Lacunarity < 1 {
		return fmt.Errorf("turbulence lacunarity must be >= 1, got %v", p.Disk.Lacunarity)
	}
	if p.Disk.Persistence <= 0 || p.Disk.Persistence >= 1 {
		return fmt.Errorf("turbulence persistence must be in (0,1), got %v", p.Disk.Persistence)
	}
	return nil
}

// Scene bundles a parameter set with a camera pose under a preset name
type Scene struct {
	Name   string       `json:"name"`
	Params Params       `json:"params"`
	Camera CameraConfig `json:"camera"`
}

// DefaultParams returns the default parameter table. Mass 1 puts the event
// horizon at radius 2; the disk inner edge sits at the 3x horizon ISCO
// convention.
func DefaultParams() Params {
	return Params{
		Mass:            1.0,
		LensingStrength: 1.0,
		StepSize:        0.6,
		Disk: physics.DiskParams{
			InnerRadius:         6.0, // 3x the event horizon radius
			OuterRadius:         14.0,
			Temperature:         8.0,
			TemperatureFalloff:  1.5,
			Brightness:          1.2,
			RotationSpeed:       1.5,
			DopplerStrength:     0.6,
			InnerSoftness:       0.12,
			OuterSoftness:       0.35,
			TurbulenceScale:     1.1,
			TurbulenceStretch:   2.5,
			TurbulenceSharpness: 2.0,
			CycleTime:           12.0,
			Lacunarity:          2.0,
			Persistence:         0.5,
		},
		Background: background.Params{
			StarsEnabled:   true,
			StarDensity:    0.12,
			StarSize:       1.0,
			StarBrightness: 0.9,
			NebulaEnabled:  true,
			NebulaLayers: [2]background.NebulaLayer{
				{Scale: 2.5, Density: 0.15, Brightness: 0.25, Color: core.NewVec3(0.35, 0.2, 0.6)},
				{Scale: 5.0, Density: 0.05, Brightness: 0.18, Color: core.NewVec3(0.7, 0.25, 0.35)},
			},
			DustEnabled: false,
			Dust:        background.DustParams{Seed: 1, Scale: 2.0, Density: 0.4, Octaves: 3},
		},
	}
}

// Quality presets adjust only the march step size and the two
// background-enable flags; everything else is left untouched.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// ApplyQuality applies a quality preset to an existing parameter set
func ApplyQuality(p *Params, q Quality) error {
	switch q {
	case QualityLow:
		p.StepSize = 1.2
		p.Background.StarsEnabled = false
		p.Background.NebulaEnabled = false
	case QualityMedium:
		p.StepSize = 0.8
		p.Background.StarsEnabled = true
		p.Background.NebulaEnabled = false
	case QualityHigh:
		p.StepSize = 0.5
		p.Background.StarsEnabled = true
		p.Background.NebulaEnabled = true
	default:
		return fmt.Errorf("unknown quality preset: %q", q)
	}
	return nil
}
