package render

import (
	"fmt"
	"runtime"
	"sync"

	"volcast/internal/models"
	"volcast/pkg/geom"
	"volcast/pkg/raycast"
	"volcast/pkg/texture"
)

// Params holds the per-render configuration consumed by the renderer.
type Params struct {
	// Width and Height are the output framebuffer dimensions in fragments.
	Width  int
	Height int

	// Sampler is the fully configured per-sample routine (volume, colour
	// tables, clip window).
	Sampler *raycast.Sampler

	// ScreenToTex maps normalized screen coordinates (x, y in [0,1], z=0 at
	// the near face, z=1 at the far face) into texture space. It must be
	// invertible; its inverse supplies the depth transform.
	ScreenToTex geom.Mat4

	// TotalSteps is the full step budget for each ray.
	TotalSteps int

	// StepsPerPass bounds how many steps one pass may execute. Zero, or
	// any value >= TotalSteps, selects the single-pass fast path.
	StepsPerPass int

	// BlendFactor in (0,1] controls per-sample contribution.
	BlendFactor float32

	// Planes holds the active clip planes, at most raycast.MaxClipPlanes.
	Planes []geom.Plane

	// Dither jitters each ray origin by a deterministic per-fragment offset
	// along the ray direction.
	Dither bool

	// ClobberAlpha forces the output alpha to ClobberValue, for renders
	// used as intermediate layers.
	ClobberAlpha bool
	ClobberValue float32

	// Workers is the number of goroutines tracing fragments. Zero means
	// one per CPU core.
	Workers int

	// AfterPass, when non-nil, is invoked between passes with the index of
	// the pass just completed and the total pass count. Returning false
	// abandons the render.
	AfterPass func(pass, total int) bool
}

// Renderer drives complete renders: it derives the per-fragment rays from
// the screen-to-texture transform, splits the step budget into passes, runs
// the embarrassingly parallel fragment loop across workers, and sequences
// the pass hand-off buffers.
type Renderer struct {
	params      *Params
	texToScreen geom.Mat4
	rayStep     geom.Vec3
	stats       models.RayStats
}

// ErrAborted is returned when an AfterPass callback abandons the render.
var ErrAborted = fmt.Errorf("render abandoned between passes")

// NewRenderer validates the parameters and precomputes the ray geometry.
// A degenerate ray step (shorter than raycast.MinVectorLength) is a caller
// contract violation and is rejected here, once per render, so the per-step
// path never has to defend against it.
func NewRenderer(params *Params) (*Renderer, error) {
	if params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", params.Width, params.Height)
	}
	if params.Sampler == nil {
		return nil, fmt.Errorf("renderer has no sampler")
	}
	if err := params.Sampler.Validate(); err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}
	if params.TotalSteps <= 0 {
		return nil, fmt.Errorf("total step budget must be positive, got %d", params.TotalSteps)
	}
	if params.BlendFactor <= 0 || params.BlendFactor > 1 {
		return nil, fmt.Errorf("blend factor must be in (0,1], got %g", params.BlendFactor)
	}
	if len(params.Planes) > raycast.MaxClipPlanes {
		return nil, fmt.Errorf("%d clip planes exceeds the maximum of %d",
			len(params.Planes), raycast.MaxClipPlanes)
	}

	texToScreen, err := texture.InvertMat4(params.ScreenToTex)
	if err != nil {
		return nil, fmt.Errorf("screen-to-texture transform: %w", err)
	}

	// The ray vector is a per-draw quantity: with an affine screen
	// transform it is the same for every fragment.
	span := params.ScreenToTex.MulVec(geom.Vec4{Z: 1}).XYZ()
	rayStep := span.Scale(1 / float32(params.TotalSteps))
	if rayStep.Len() < raycast.MinVectorLength {
		return nil, fmt.Errorf("ray step vector is degenerate (length %g)", rayStep.Len())
	}

	return &Renderer{
		params:      params,
		texToScreen: texToScreen,
		rayStep:     rayStep,
	}, nil
}

// RayStep returns the per-step advance shared by every fragment's ray.
func (r *Renderer) RayStep() geom.Vec3 { return r.rayStep }

// Stats returns the counters accumulated by the most recent render.
func (r *Renderer) Stats() models.RayStats { return r.stats }

// PassCount returns how many passes the configured budgets require.
func (r *Renderer) PassCount() int {
	per := r.params.StepsPerPass
	if per <= 0 || per >= r.params.TotalSteps {
		return 1
	}
	return (r.params.TotalSteps + per - 1) / per
}

// origin returns the texture-space starting coordinate for the ray of
// fragment (x, y), at the near face of the screen volume.
func (r *Renderer) origin(x, y int) geom.Vec3 {
	u := (float32(x) + 0.5) / float32(r.params.Width)
	v := (float32(y) + 0.5) / float32(r.params.Height)
	return r.params.ScreenToTex.TransformPoint(geom.Vec3{X: u, Y: v, Z: 0})
}

func (r *Renderer) baseConfig(steps int) raycast.Config {
	cfg := raycast.Config{
		Sampler:     r.params.Sampler,
		RayStep:     r.rayStep,
		BlendFactor: r.params.BlendFactor,
		Steps:       steps,
		TexToScreen: r.texToScreen,
	}
	if r.params.Dither {
		cfg.DitherDir = r.rayStep
	}
	return cfg
}

// Render traces every fragment and returns the composed framebuffer.
func (r *Renderer) Render() (*Framebuffer, error) {
	if r.PassCount() == 1 {
		return r.renderSinglePass()
	}
	return r.renderMultiPass()
}

// forEachRow fans the fragment rows out across the worker pool. Fragments
// are independent, so rows partition cleanly with no shared mutable state
// beyond each worker's own statistics.
func (r *Renderer) forEachRow(rowFn func(y int, stats *models.RayStats)) models.RayStats {
	workers := r.params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > r.params.Height {
		workers = r.params.Height
	}

	workerStats := make([]models.RayStats, workers)
	rowsPerWorker := (r.params.Height + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			startRow := id * rowsPerWorker
			endRow := startRow + rowsPerWorker
			if endRow > r.params.Height {
				endRow = r.params.Height
			}
			for y := startRow; y < endRow; y++ {
				rowFn(y, &workerStats[id])
			}
		}(w)
	}
	wg.Wait()

	var total models.RayStats
	for i := range workerStats {
		total.Merge(workerStats[i])
	}
	return total
}

func (r *Renderer) renderSinglePass() (*Framebuffer, error) {
	caster, err := raycast.NewSinglePass(r.baseConfig(r.params.TotalSteps))
	if err != nil {
		return nil, err
	}

	fb := NewFramebuffer(r.params.Width, r.params.Height)
	r.stats = r.forEachRow(func(y int, stats *models.RayStats) {
		for x := 0; x < r.params.Width; x++ {
			stats.Fragments++
			state, ok := caster.Cast(x, y, r.origin(x, y))
			if !ok {
				stats.Discarded++
				continue
			}
			stats.Samples += int64(state.Samples)
			if state.Saturated() {
				stats.Saturated++
			}
			res := caster.Resolve(state)
			if r.params.ClobberAlpha {
				res.Colour.W = r.params.ClobberValue
			}
			fb.Set(x, y, res)
		}
	})

	if r.params.AfterPass != nil && !r.params.AfterPass(1, 1) {
		return nil, ErrAborted
	}
	return fb, nil
}

func (r *Renderer) renderMultiPass() (*Framebuffer, error) {
	passes := r.PassCount()
	fb := NewFramebuffer(r.params.Width, r.params.Height)

	in := NewPassBuffer(r.params.Width, r.params.Height)
	out := NewPassBuffer(r.params.Width, r.params.Height)

	for pass := 0; pass < passes; pass++ {
		start := pass * r.params.StepsPerPass
		steps := r.params.StepsPerPass
		if start+steps > r.params.TotalSteps {
			steps = r.params.TotalSteps - start
		}

		cfg := raycast.PassConfig{
			Config:         r.baseConfig(steps),
			Planes:         r.params.Planes,
			StartIteration: start,
			Resume:         pass > 0,
			ClobberAlpha:   r.params.ClobberAlpha,
			ClobberValue:   r.params.ClobberValue,
		}
		caster, err := raycast.NewMultiPass(cfg)
		if err != nil {
			return nil, err
		}

		final := pass == passes-1
		passStats := r.forEachRow(func(y int, stats *models.RayStats) {
			for x := 0; x < r.params.Width; x++ {
				state := caster.Cast(x, y, r.origin(x, y), in.Load(x, y))
				if !final {
					out.Store(x, y, state)
					continue
				}
				stats.Fragments++
				res, ok := caster.Resolve(state)
				if !ok {
					stats.Discarded++
					continue
				}
				stats.Samples += int64(state.Samples)
				if state.Saturated() {
					stats.Saturated++
				}
				fb.Set(x, y, res)
			}
		})
		if final {
			r.stats = passStats
		}

		if r.params.AfterPass != nil && !r.params.AfterPass(pass+1, passes) {
			return nil, ErrAborted
		}

		// Pass N's output becomes pass N+1's read-only input.
		in, out = out, in
	}

	return fb, nil
}
