package models

// Shape describes the voxel dimensions of a 3D volume.
type Shape struct {
	// Width is the number of voxels along the x axis
	Width int

	// Height is the number of voxels along the y axis
	Height int

	// Depth is the number of voxels along the z axis
	Depth int
}

// Count returns the total number of voxels in the volume.
func (s Shape) Count() int {
	return s.Width * s.Height * s.Depth
}

// Index returns the flat index of voxel (x, y, z) using the same row-major
// layout used throughout the module: z*w*h + y*w + x.
func (s Shape) Index(x, y, z int) int {
	return z*s.Width*s.Height + y*s.Width + x
}

// Valid reports whether all three dimensions are positive.
func (s Shape) Valid() bool {
	return s.Width > 0 && s.Height > 0 && s.Depth > 0
}

// RayStats accumulates per-render counters. The renderer aggregates one
// RayStats across all workers once a frame completes; individual workers
// keep their own local copy to avoid contention.
type RayStats struct {
	// Fragments is the number of screen fragments traced
	Fragments int64

	// Discarded counts fragments that produced no samples at all and were
	// therefore not written to the framebuffer
	Discarded int64

	// Samples is the total number of non-rejected volume samples composited
	Samples int64

	// Saturated counts rays that terminated early because accumulated
	// opacity reached the saturation threshold
	Saturated int64
}

// Merge adds other's counters into s.
func (s *RayStats) Merge(other RayStats) {
	s.Fragments += other.Fragments
	s.Discarded += other.Discarded
	s.Samples += other.Samples
	s.Saturated += other.Saturated
}
