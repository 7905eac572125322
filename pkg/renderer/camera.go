package renderer

import (
	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

// tanHalfFOV fixes the pinhole field of view. The parameter set
// deliberately does not expose this; framing is controlled by moving the
// camera.
const tanHalfFOV = 0.8

// Camera generates primary rays from a look-at pose
type Camera struct {
	origin  core.Vec3
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3
	width   int
	height  int
	aspect  float64
}

// NewCamera creates a pinhole camera for the given pose and viewport
func NewCamera(cfg scene.CameraConfig, width, height int) *Camera {
	forward := cfg.Target.Subtract(cfg.Position).Normalize()

	worldUp := core.NewVec3(0, 1, 0)
	right := worldUp.Cross(forward)
	if right.LengthSquared() < 1e-12 {
		// Looking straight along world up; any horizontal axis works
		right = core.NewVec3(1, 0, 0)
	} else {
		right = right.Normalize()
	}
	up := forward.Cross(right)

	return &Camera{
		origin:  cfg.Position,
		forward: forward,
		right:   right,
		up:      up,
		width:   width,
		height:  height,
		aspect:  float64(width) / float64(height),
	}
}

// GetRay generates the primary ray for pixel (i, j), sampling the pixel
// center. The integrator is deterministic, so one sample per pixel is
// exact: there is nothing to average.
func (c *Camera) GetRay(i, j int) core.Ray {
	u := (2.0*(float64(i)+0.5)/float64(c.width) - 1.0) * c.aspect * tanHalfFOV
	v := (1.0 - 2.0*(float64(j)+0.5)/float64(c.height)) * tanHalfFOV

	direction := c.forward.
		Add(c.right.Multiply(u)).
		Add(c.up.Multiply(v)).
		Normalize()

	return core.NewRay(c.origin, direction)
}
