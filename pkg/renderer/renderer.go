package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/integrator"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains renderer configuration
type Config struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0,
	}
}

// Renderer renders frames of a black hole scene by dispatching one
// integrator invocation per pixel across a tile worker pool.
type Renderer struct {
	scene    *scene.Scene
	width    int
	height   int
	config   Config
	geodesic *integrator.Geodesic
	logger   core.Logger
}

// NewRenderer creates a renderer for the given scene and viewport
func NewRenderer(sc *scene.Scene, width, height int, config Config, logger core.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = 64
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Renderer{
		scene:    sc,
		width:    width,
		height:   height,
		config:   config,
		geodesic: integrator.NewGeodesic(&sc.Params),
		logger:   logger,
	}
}

// RenderFrame renders one frame at the given elapsed time using the
// scene's camera pose
func (r *Renderer) RenderFrame(elapsed float64) (*image.RGBA, RenderStats) {
	return r.RenderFrameWithCamera(r.scene.Camera, elapsed)
}

// RenderFrameWithCamera renders one frame with an explicit camera pose,
// used by flythrough animation
func (r *Renderer) RenderFrameWithCamera(cfg scene.CameraConfig, elapsed float64) (*image.RGBA, RenderStats) {
	camera := NewCamera(cfg, r.width, r.height)
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	tiles := NewTileGrid(r.width, r.height, r.config.TileSize)

	pool := NewWorkerPool(r.geodesic, r.width, r.height, r.config.TileSize, r.config.NumWorkers)
	pool.Start()

	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:    tile,
			Camera:  camera,
			Elapsed: elapsed,
			TaskID:  taskID,
			Img:     img,
		})
	}

	var stats RenderStats
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
	}
	pool.Stop()

	stats.finalize()
	return img, stats
}

// vec3ToColor converts a [0,1] color vector to an opaque RGBA pixel.
// Output alpha is always 255; the integrator's internal opacity is a
// compositing weight, not a pixel alpha.
func vec3ToColor(v core.Vec3) color.RGBA {
	c := v.Clamp(0, 1)
	return color.RGBA{
		R: uint8(c.X*255.0 + 0.5),
		G: uint8(c.Y*255.0 + 0.5),
		B: uint8(c.Z*255.0 + 0.5),
		A: 255,
	}
}
