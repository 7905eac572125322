package renderer

import (
	"context"
	"image"
	"time"
)

// FrameResult contains the result of a single animation frame
type FrameResult struct {
	FrameNumber int
	Elapsed     float64
	Image       *image.RGBA
	Stats       RenderStats
	IsLast      bool
}

// AnimationOptions configures an animation sequence
type AnimationOptions struct {
	Frames     int         // Number of frames to render
	StartTime  float64     // Simulation time of the first frame, seconds
	TimeStep   float64     // Simulation time advanced per frame
	Flythrough *Flythrough // Optional scripted camera; nil uses the scene camera
}

// RenderAnimation renders a frame sequence with channel-based
// communication. The caller reads frames until the channel closes;
// cancelling the context stops rendering between frames.
func (r *Renderer) RenderAnimation(ctx context.Context, opts AnimationOptions) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		r.logger.Printf("Starting animation: %d frames, dt=%.3fs\n", opts.Frames, opts.TimeStep)

		for frame := 0; frame < opts.Frames; frame++ {
			select {
			case <-ctx.Done():
				r.logger.Printf("Animation cancelled before frame %d\n", frame)
				errChan <- ctx.Err()
				return
			default:
			}

			elapsed := opts.StartTime + float64(frame)*opts.TimeStep

			cfg := r.scene.Camera
			if opts.Flythrough != nil {
				cfg = opts.Flythrough.CameraAt(elapsed)
			}

			startTime := time.Now()
			img, stats := r.RenderFrameWithCamera(cfg, elapsed)
			r.logger.Printf("Frame %d/%d rendered in %v (%.1f steps/ray)\n",
				frame+1, opts.Frames, time.Since(startTime), stats.AverageSteps)

			result := FrameResult{
				FrameNumber: frame,
				Elapsed:     elapsed,
				Image:       img,
				Stats:       stats,
				IsLast:      frame == opts.Frames-1,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return frameChan, errChan
}
