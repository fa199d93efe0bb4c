package raycast

import (
	"fmt"

	"volcast/pkg/geom"
)

// Config holds the parameters shared by both casters. The step budget is
// fixed when the caster is constructed, mirroring the instruction-count
// limits that make GPU ray programs compile their loop bounds in.
type Config struct {
	// Sampler performs the per-sample lookup, clip test and colour mapping.
	Sampler *Sampler

	// RayStep is the per-step advance in texture coordinates. Its length
	// must be at least MinVectorLength; shorter vectors are a caller
	// contract violation and rejected at construction.
	RayStep geom.Vec3

	// BlendFactor in (0,1] controls how much each sample contributes.
	BlendFactor float32

	// Steps is the per-invocation step budget.
	Steps int

	// TexToScreen converts a texture coordinate to screen space; the depth
	// output is the z component of the transformed first-hit position.
	TexToScreen geom.Mat4

	// DitherDir is the direction along which the per-fragment jitter is
	// applied to the ray origin. A zero vector disables dithering.
	DitherDir geom.Vec3
}

func (c *Config) validate() error {
	if c.Sampler == nil {
		return fmt.Errorf("caster has no sampler")
	}
	if err := c.Sampler.Validate(); err != nil {
		return err
	}
	if c.Steps <= 0 {
		return fmt.Errorf("step budget must be positive, got %d", c.Steps)
	}
	if c.BlendFactor <= 0 || c.BlendFactor > 1 {
		return fmt.Errorf("blend factor must be in (0,1], got %g", c.BlendFactor)
	}
	if c.RayStep.Len() < MinVectorLength {
		return fmt.Errorf("ray step vector is degenerate (length %g)", c.RayStep.Len())
	}
	return nil
}

// jitter returns the dithered offset for the fragment at (x, y), or the
// zero vector when dithering is disabled.
func (c *Config) jitter(fragX, fragY int) geom.Vec3 {
	if c.DitherDir.Len() < MinVectorLength {
		return geom.Vec3{}
	}
	return c.DitherDir.Scale(Dither(float32(fragX), float32(fragY)))
}

// Result is the composited output for one fragment.
type Result struct {
	// Colour is premultiplied RGBA.
	Colour geom.Vec4

	// Depth is the screen-space depth of the first contributing sample.
	Depth float32
}

// SinglePass casts complete rays within one invocation. It is the fast path
// used when the whole step budget fits in a single pass.
type SinglePass struct {
	cfg Config
}

// NewSinglePass validates the configuration and builds a caster.
func NewSinglePass(cfg Config) (*SinglePass, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("single-pass caster: %w", err)
	}
	return &SinglePass{cfg: cfg}, nil
}

// Cast marches one ray from origin, compositing front to back, and returns
// the final ray state. The second return value is false when the fragment
// must be discarded: a ray that contributed no samples is not written at
// all, so opaque geometry behind the volume keeps correct occlusion.
func (c *SinglePass) Cast(fragX, fragY int, origin geom.Vec3) (RayState, bool) {
	state := NewRayState(origin.Add(c.cfg.jitter(fragX, fragY)))

	for i := 0; i < c.cfg.Steps; i++ {
		if !InBounds(state.Pos) {
			break
		}
		if state.Saturated() {
			break
		}
		killed, sample, _ := c.cfg.Sampler.Sample(state.Pos, state.Pos)
		if !killed {
			depth := c.cfg.TexToScreen.TransformPoint(state.Pos).Z
			state.composite(sample, c.cfg.BlendFactor, depth)
		}
		state.Pos = state.Pos.Add(c.cfg.RayStep)
	}

	if state.Samples == 0 {
		return state, false
	}
	return state, true
}

// Resolve converts a finished ray state into the fragment output.
func (c *SinglePass) Resolve(state RayState) Result {
	return Result{Colour: state.Colour, Depth: state.Depth}
}
