package render

import (
	"volcast/pkg/geom"
	"volcast/pkg/raycast"
)

// PassBuffer carries ray state between passes of a multi-pass render: the
// accumulated colour and first-hit depth of every fragment, written by pass
// N and read-only to pass N+1. The ray position itself is not stored; each
// pass recomputes it from its start iteration, so the buffer matches what a
// GPU implementation can hand over in colour and depth attachments. The
// first-hit flag and sample count are serialized explicitly instead of
// being inferred from a zero alpha.
type PassBuffer struct {
	Width  int
	Height int

	colour   []float32
	depth    []float32
	hasDepth []bool
	samples  []int32
}

// NewPassBuffer allocates a cleared hand-off buffer.
func NewPassBuffer(width, height int) *PassBuffer {
	return &PassBuffer{
		Width:    width,
		Height:   height,
		colour:   make([]float32, width*height*4),
		depth:    make([]float32, width*height),
		hasDepth: make([]bool, width*height),
		samples:  make([]int32, width*height),
	}
}

// Store serializes the ray state for fragment (x, y).
func (b *PassBuffer) Store(x, y int, state raycast.RayState) {
	i := y*b.Width + x
	b.colour[i*4+0] = state.Colour.X
	b.colour[i*4+1] = state.Colour.Y
	b.colour[i*4+2] = state.Colour.Z
	b.colour[i*4+3] = state.Colour.W
	b.depth[i] = state.Depth
	b.hasDepth[i] = state.HasDepth
	b.samples[i] = int32(state.Samples)
}

// Load restores the ray state for fragment (x, y). The position field is
// zero; the resuming pass derives its own starting coordinate.
func (b *PassBuffer) Load(x, y int) raycast.RayState {
	i := y*b.Width + x
	return raycast.RayState{
		Colour: geom.Vec4{
			X: b.colour[i*4+0],
			Y: b.colour[i*4+1],
			Z: b.colour[i*4+2],
			W: b.colour[i*4+3],
		},
		Depth:    b.depth[i],
		HasDepth: b.hasDepth[i],
		Samples:  int(b.samples[i]),
	}
}
