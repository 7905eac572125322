package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-blackhole-raytracer/pkg/post"
	"github.com/df07/go-blackhole-raytracer/pkg/renderer"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
	"github.com/df07/go-blackhole-raytracer/pkg/store"
)

func main() {
	// Parse command line flags
	sceneName := flag.String("scene", "default", "Scene name (see -help for the list)")
	width := flag.Int("width", 800, "Image width in pixels")
	height := flag.Int("height", 450, "Image height in pixels")
	elapsed := flag.Float64("time", 0, "Simulation time of the first frame in seconds")
	frames := flag.Int("frames", 1, "Number of animation frames to render")
	timeStep := flag.Float64("timestep", 1.0/30.0, "Simulation time between frames in seconds")
	quality := flag.String("quality", "", "Quality preset: low, medium or high")
	bloom := flag.Bool("bloom", false, "Apply bloom post-processing")
	dbPath := flag.String("db", "", "Optional preset database; -scene may name a stored preset")
	outputDir := flag.String("output", "output", "Output directory")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Black Hole Raytracer")
		fmt.Println("Usage: blackhole [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, name := range scene.SceneNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
		fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
		return
	}

	sc, err := loadScene(*sceneName, *dbPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *quality != "" {
		if err := scene.ApplyQuality(&sc.Params, scene.Quality(*quality)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	sceneDir := filepath.Join(*outputDir, sc.Name)
	if err := os.MkdirAll(sceneDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendering scene %q at %dx%d, %d frame(s)...\n", sc.Name, *width, *height, *frames)

	rend := renderer.NewRenderer(sc, *width, *height, renderer.DefaultConfig(), nil)

	opts := renderer.AnimationOptions{
		Frames:    *frames,
		StartTime: *elapsed,
		TimeStep:  *timeStep,
	}

	startTime := time.Now()
	frameChan, errChan := rend.RenderAnimation(context.Background(), opts)

	timestamp := time.Now().Format("20060102_150405")
	for frame := range frameChan {
		img := frame.Image
		if *bloom {
			img = post.ApplyBloom(img, post.DefaultBloomConfig())
		}

		filename := filepath.Join(sceneDir, fmt.Sprintf("render_%s.png", timestamp))
		if *frames > 1 {
			filename = filepath.Join(sceneDir, fmt.Sprintf("render_%s_%04d.png", timestamp, frame.FrameNumber))
		}

		if err := savePNG(filename, img); err != nil {
			fmt.Printf("Error saving frame %d: %v\n", frame.FrameNumber, err)
			os.Exit(1)
		}

		fmt.Printf("Frame %d/%d (t=%.2fs): %d captured, %d disk pixels, %.1f avg steps -> %s\n",
			frame.FrameNumber+1, *frames, frame.Elapsed,
			frame.Stats.Captured, frame.Stats.DiskHitPixels, frame.Stats.AverageSteps, filename)
	}

	if err := <-errChan; err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v\n", time.Since(startTime))
}

// loadScene resolves the scene name against the preset database first
// when one is given, falling back to the built-in scenes
func loadScene(name, dbPath string) (*scene.Scene, error) {
	if dbPath != "" {
		db, err := store.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		if sc, err := db.LoadPreset(name); err == nil {
			return sc, nil
		}
	}

	sc, err := scene.CreateScene(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(scene.SceneNames(), ", "))
	}
	return sc, nil
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
