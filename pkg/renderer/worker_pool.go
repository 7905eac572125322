package renderer

import (
	"image"
	"runtime"
	"sync"

	"github.com/df07/go-blackhole-raytracer/pkg/integrator"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile    *Tile
	Camera  *Camera
	Elapsed float64
	TaskID  int
	Img     *image.RGBA // Shared output image; tiles cover disjoint pixels
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool manages parallel tile rendering. Workers share one immutable
// integrator; the per-ray state is local to each trace, so no
// synchronization is needed beyond the task and result channels.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	geodesic    *integrator.Geodesic
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool over the given integrator
func NewWorkerPool(geodesic *integrator.Geodesic, width, height, tileSize, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	maxTiles := ((width + tileSize - 1) / tileSize) * ((height + tileSize - 1) / tileSize)

	return &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
		geodesic:    geodesic,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		stats := renderTile(wp.geodesic, task)
		wp.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}

// renderTile traces every pixel in the tile bounds directly into the
// shared image. Tiles have non-overlapping bounds, so writes are safe.
func renderTile(geodesic *integrator.Geodesic, task TileTask) RenderStats {
	bounds := task.Tile.Bounds
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ray := task.Camera.GetRay(i, j)
			result := geodesic.Trace(ray, task.Elapsed)

			task.Img.SetRGBA(i, j, vec3ToColor(result.Color))

			stats.TotalSteps += result.Steps
			if result.DiskHits > 0 {
				stats.DiskHitPixels++
			}
			switch result.State {
			case integrator.StateCaptured:
				stats.Captured++
			case integrator.StateOpaque:
				stats.Opaque++
			default:
				stats.Escaped++
			}
		}
	}

	return stats
}
