package raycast

import "volcast/pkg/geom"

// AlphaSaturation is the accumulated-opacity threshold at which a ray stops
// sampling: further contributions would be visually negligible.
const AlphaSaturation = 0.95

// MinVectorLength is the magnitude below which a direction vector is
// treated as zero. Rays and dither directions shorter than this are
// degenerate and rejected at configuration time.
const MinVectorLength = 1e-4

// RayState is the resumable per-fragment state of a ray march. It is
// created at the ray origin, mutated once per step, and either discarded or
// serialized into a pass hand-off buffer when the per-pass step budget runs
// out. Colour is premultiplied RGBA accumulated front to back.
type RayState struct {
	// Pos is the current texture coordinate.
	Pos geom.Vec3

	// Colour is the accumulated premultiplied colour and opacity.
	Colour geom.Vec4

	// Samples counts the non-rejected samples composited so far, across
	// every pass of the chain.
	Samples int

	// Depth holds the screen-space depth of the first contributing sample.
	// It is set exactly once and never updated on later contributions.
	Depth    float32
	HasDepth bool
}

// NewRayState returns a fresh ray at origin with nothing accumulated.
func NewRayState(origin geom.Vec3) RayState {
	return RayState{Pos: origin}
}

// Saturated reports whether the ray has accumulated enough opacity to stop.
func (s *RayState) Saturated() bool {
	return s.Colour.W >= AlphaSaturation
}

// composite blends one sample into the accumulator, front to back:
//
//	rgb += (1 - a) * blend * sample.rgb
//	a   += (1 - a) * blend
//
// and pins the depth to the first contribution. The arithmetic keeps alpha
// inside [0,1] for any blend factor in (0,1] without an explicit clamp.
func (s *RayState) composite(sample geom.Vec4, blend, depth float32) {
	remaining := 1 - s.Colour.W
	s.Colour.X += remaining * blend * sample.X
	s.Colour.Y += remaining * blend * sample.Y
	s.Colour.Z += remaining * blend * sample.Z
	s.Colour.W += remaining * blend
	if !s.HasDepth {
		s.Depth = depth
		s.HasDepth = true
	}
	s.Samples++
}
