package scene

import (
	"fmt"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// NewDefaultScene creates the standard three-quarter view of the black
// hole, camera slightly above the disk plane
func NewDefaultScene() *Scene {
	return &Scene{
		Name:   "default",
		Params: DefaultParams(),
		Camera: CameraConfig{
			Position: core.NewVec3(0, 5, 20),
			Target:   core.NewVec3(0, 0, 0),
		},
	}
}

// NewEdgeOnScene views the disk almost edge-on, where lensing folds the
// far side of the disk above and below the shadow
func NewEdgeOnScene() *Scene {
	s := NewDefaultScene()
	s.Name = "edge-on"
	s.Camera.Position = core.NewVec3(0, 0.8, 22)
	return s
}

// NewOverheadScene looks straight down onto the disk plane
func NewOverheadScene() *Scene {
	s := NewDefaultScene()
	s.Name = "overhead"
	// Slight Z offset keeps the view direction off the world-up axis
	s.Camera.Position = core.NewVec3(0, 26, 0.5)
	return s
}

// NewDiskOnlyScene disables the background layers, isolating the disk for
// parameter tuning
func NewDiskOnlyScene() *Scene {
	s := NewDefaultScene()
	s.Name = "disk-only"
	s.Params.Background.StarsEnabled = false
	s.Params.Background.NebulaEnabled = false
	return s
}

// NewDeepFieldScene emphasizes the lensed background: heavier bending, a
// denser sky, dust extinction enabled
func NewDeepFieldScene() *Scene {
	s := NewDefaultScene()
	s.Name = "deep-field"
	s.Params.LensingStrength = 1.8
	s.Params.Background.StarDensity = 0.3
	s.Params.Background.StarBrightness = 1.2
	s.Params.Background.NebulaLayers[0].Brightness = 0.45
	s.Params.Background.NebulaLayers[1].Brightness = 0.3
	s.Params.Background.DustEnabled = true
	return s
}

// SceneNames lists the available preset names in presentation order
func SceneNames() []string {
	return []string{"default", "edge-on", "overhead", "disk-only", "deep-field"}
}

// CreateScene creates a scene preset by name
func CreateScene(name string) (*Scene, error) {
	switch name {
	case "default":
		return NewDefaultScene(), nil
	case "edge-on":
		return NewEdgeOnScene(), nil
	case "overhead":
		return NewOverheadScene(), nil
	case "disk-only":
		return NewDiskOnlyScene(), nil
	case "deep-field":
		return NewDeepFieldScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene: %q", name)
	}
}
