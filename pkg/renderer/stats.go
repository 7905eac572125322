package renderer

// RenderStats aggregates per-ray outcomes over a frame or tile
type RenderStats struct {
	TotalPixels   int     // Total number of pixels rendered
	Captured      int     // Rays that fell inside the event horizon
	Escaped       int     // Rays that left the scene or exhausted the budget
	Opaque        int     // Rays terminated by accumulated disk opacity
	DiskHitPixels int     // Pixels with at least one disk crossing
	TotalSteps    int     // March iterations summed over all rays
	AverageSteps  float64 // Mean iterations per ray
}

// merge accumulates tile statistics into frame statistics
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.Captured += other.Captured
	s.Escaped += other.Escaped
	s.Opaque += other.Opaque
	s.DiskHitPixels += other.DiskHitPixels
	s.TotalSteps += other.TotalSteps
}

// finalize computes derived values after all tiles are merged
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSteps = float64(s.TotalSteps) / float64(s.TotalPixels)
	}
}
