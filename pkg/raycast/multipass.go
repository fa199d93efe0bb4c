package raycast

import (
	"fmt"

	"volcast/pkg/geom"
)

// MaxClipPlanes is the largest number of clip planes a pass will test.
const MaxClipPlanes = 10

// PassConfig extends the shared caster configuration with the multi-pass
// controls: where in the full ray this pass starts, whether it resumes a
// previous pass's accumulation, the active clip planes, and the optional
// alpha clobber applied to the final output.
type PassConfig struct {
	Config

	// Planes holds the active clip planes, at most MaxClipPlanes. A point
	// is visible if it is on the keep side of at least one plane; with no
	// planes, no clipping is applied.
	Planes []geom.Plane

	// StartIteration is the index of the first step this pass executes.
	// The starting coordinate is offset by StartIteration*RayStep so
	// successive passes continue the ray instead of restarting it.
	StartIteration int

	// Resume marks this pass as a continuation: the incoming ray state is
	// restored from the previous pass's hand-off buffer. Carrying this flag
	// explicitly avoids inferring resumption from a zero incoming alpha,
	// which cannot distinguish a fresh ray from one that crossed only
	// fully transparent volume.
	Resume bool

	// ClobberAlpha forces the final output alpha to ClobberValue, for use
	// when this render is an intermediate layer composited under other
	// opaque content. The hand-off state between passes is never clobbered.
	ClobberAlpha bool
	ClobberValue float32
}

// MultiPass casts a bounded slice of a ray, resuming accumulation from a
// previous pass where one exists. It exists because a full-quality march
// can exceed what a single invocation may execute; the host runs a chain of
// these, handing colour and depth across passes.
type MultiPass struct {
	cfg PassConfig
}

// NewMultiPass validates the configuration and builds a caster.
func NewMultiPass(cfg PassConfig) (*MultiPass, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("multi-pass caster: %w", err)
	}
	if len(cfg.Planes) > MaxClipPlanes {
		return nil, fmt.Errorf("multi-pass caster: %d clip planes exceeds the maximum of %d",
			len(cfg.Planes), MaxClipPlanes)
	}
	if cfg.StartIteration < 0 {
		return nil, fmt.Errorf("multi-pass caster: negative start iteration %d", cfg.StartIteration)
	}
	return &MultiPass{cfg: cfg}, nil
}

// visibleThroughPlanes applies the intersection-of-exclusions rule: a point
// is clipped only when it is on the wrong side of every active plane.
func visibleThroughPlanes(planes []geom.Plane, p geom.Vec3) bool {
	if len(planes) == 0 {
		return true
	}
	for _, pl := range planes {
		if pl.SignedDistance(p) >= 0 {
			return true
		}
	}
	return false
}

// Cast executes this pass's step budget for one fragment and returns the
// updated ray state for hand-off. origin is the un-jittered origin of the
// whole ray; the pass recomputes its own starting coordinate from it, so
// the deterministic jitter is applied to the ray exactly once regardless of
// how many passes resume it. prev is ignored unless the pass is a resume.
func (c *MultiPass) Cast(fragX, fragY int, origin geom.Vec3, prev RayState) RayState {
	start := origin.
		Add(c.cfg.jitter(fragX, fragY)).
		Add(c.cfg.RayStep.Scale(float32(c.cfg.StartIteration)))

	state := NewRayState(start)
	if c.cfg.Resume {
		state.Colour = prev.Colour
		state.Depth = prev.Depth
		state.HasDepth = prev.HasDepth
		state.Samples = prev.Samples
	}

	for i := 0; i < c.cfg.Steps; i++ {
		// Unlike the single-pass fast path, a failing condition only skips
		// compositing for this step; the ray still advances, so every pass
		// of a chain visits the same coordinates.
		killed, sample, _ := c.cfg.Sampler.Sample(state.Pos, state.Pos)
		contribute := !killed &&
			InBounds(state.Pos) &&
			!state.Saturated() &&
			visibleThroughPlanes(c.cfg.Planes, state.Pos)
		if contribute {
			depth := c.cfg.TexToScreen.TransformPoint(state.Pos).Z
			state.composite(sample, c.cfg.BlendFactor, depth)
		}
		state.Pos = state.Pos.Add(c.cfg.RayStep)
	}

	return state
}

// Resolve converts the final pass's ray state into the fragment output,
// applying the alpha clobber. The second return value is false when the
// fragment is discarded: no pass in the chain accumulated any opacity, so
// the ray never intersected visible volume.
func (c *MultiPass) Resolve(state RayState) (Result, bool) {
	if state.Colour.W == 0 {
		return Result{}, false
	}
	out := Result{Colour: state.Colour, Depth: state.Depth}
	if c.cfg.ClobberAlpha {
		out.Colour.W = c.cfg.ClobberValue
	}
	return out, true
}
