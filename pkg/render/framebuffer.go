// Package render owns the host-side orchestration of the ray casting core:
// camera and ray setup, the per-fragment parallel loop, pass splitting with
// colour+depth hand-off buffers, and the output framebuffer.
package render

import (
	"volcast/pkg/geom"
	"volcast/pkg/raycast"
)

// Framebuffer is the composed output of a render: one premultiplied RGBA
// colour and one depth value per fragment. Fragments whose rays never
// contributed are left unwritten rather than written transparent, which is
// what keeps occlusion against opaque geometry correct downstream.
type Framebuffer struct {
	Width  int
	Height int

	// Colour holds 4 float32 components per fragment, row-major.
	Colour []float32

	// Depth holds one screen-space depth per fragment.
	Depth []float32

	// Written marks fragments that received a value.
	Written []bool
}

// NewFramebuffer allocates a cleared framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:   width,
		Height:  height,
		Colour:  make([]float32, width*height*4),
		Depth:   make([]float32, width*height),
		Written: make([]bool, width*height),
	}
}

// Set writes the result for fragment (x, y).
func (f *Framebuffer) Set(x, y int, res raycast.Result) {
	i := y*f.Width + x
	f.Colour[i*4+0] = res.Colour.X
	f.Colour[i*4+1] = res.Colour.Y
	f.Colour[i*4+2] = res.Colour.Z
	f.Colour[i*4+3] = res.Colour.W
	f.Depth[i] = res.Depth
	f.Written[i] = true
}

// At returns the result stored for fragment (x, y) and whether the fragment
// was written at all.
func (f *Framebuffer) At(x, y int) (raycast.Result, bool) {
	i := y*f.Width + x
	if !f.Written[i] {
		return raycast.Result{}, false
	}
	return raycast.Result{
		Colour: geom.Vec4{
			X: f.Colour[i*4+0],
			Y: f.Colour[i*4+1],
			Z: f.Colour[i*4+2],
			W: f.Colour[i*4+3],
		},
		Depth: f.Depth[i],
	}, true
}
