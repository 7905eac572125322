package renderer

import (
	"fmt"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

// Keyframe fixes the camera pose at one point in time
type Keyframe struct {
	Time     float64   `json:"time"`
	Position core.Vec3 `json:"position"`
	Target   core.Vec3 `json:"target"`
}

// Flythrough interpolates a scripted camera path through keyframes using
// Catmull-Rom splines, so the camera passes exactly through every
// keyframe with smooth velocity between them.
type Flythrough struct {
	keys []Keyframe
}

// NewFlythrough creates a flythrough from at least two keyframes with
// strictly increasing times
func NewFlythrough(keys []Keyframe) (*Flythrough, error) {
	if len(keys) < 2 {
		return nil, fmt.Errorf("flythrough needs at least 2 keyframes, got %d", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i].Time <= keys[i-1].Time {
			return nil, fmt.Errorf("keyframe times must be strictly increasing: %v after %v",
				keys[i].Time, keys[i-1].Time)
		}
	}

	owned := make([]Keyframe, len(keys))
	copy(owned, keys)
	return &Flythrough{keys: owned}, nil
}

// Duration returns the time of the final keyframe
func (f *Flythrough) Duration() float64 {
	return f.keys[len(f.keys)-1].Time
}

// CameraAt returns the interpolated camera pose at time t. Times before
// the first keyframe clamp to it, times after the last clamp to the last.
func (f *Flythrough) CameraAt(t float64) scene.CameraConfig {
	if t <= f.keys[0].Time {
		return scene.CameraConfig{Position: f.keys[0].Position, Target: f.keys[0].Target}
	}
	last := f.keys[len(f.keys)-1]
	if t >= last.Time {
		return scene.CameraConfig{Position: last.Position, Target: last.Target}
	}

	// Find the segment containing t
	seg := 0
	for seg < len(f.keys)-2 && f.keys[seg+1].Time <= t {
		seg++
	}

	k0 := f.keys[seg]
	k1 := f.keys[seg+1]
	u := (t - k0.Time) / (k1.Time - k0.Time)

	// Neighbor keyframes, clamped at the path endpoints
	prev := f.keys[max(seg-1, 0)]
	next := f.keys[min(seg+2, len(f.keys)-1)]

	return scene.CameraConfig{
		Position: catmullRom(prev.Position, k0.Position, k1.Position, next.Position, u),
		Target:   catmullRom(prev.Target, k0.Target, k1.Target, next.Target, u),
	}
}

// catmullRom evaluates the uniform Catmull-Rom spline through p1 and p2
// with p0 and p3 as tangent controls, at parameter u in [0, 1]
func catmullRom(p0, p1, p2, p3 core.Vec3, u float64) core.Vec3 {
	u2 := u * u
	u3 := u2 * u

	a := p1.Multiply(2.0)
	b := p2.Subtract(p0).Multiply(u)
	c := p0.Multiply(2.0).Subtract(p1.Multiply(5.0)).Add(p2.Multiply(4.0)).Subtract(p3).Multiply(u2)
	d := p1.Multiply(3.0).Subtract(p0).Subtract(p2.Multiply(3.0)).Add(p3).Multiply(u3)

	return a.Add(b).Add(c).Add(d).Multiply(0.5)
}
