// Package validation compares rendered framebuffers numerically. Its main
// consumer is the multi-pass consistency check: splitting one ray march
// into several budget-bounded passes must reproduce the single-pass result.
package validation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"volcast/pkg/render"
)

// Metrics holds the comparison results between two framebuffers.
type Metrics struct {
	// ColourRMSE is the root mean square error across all colour
	// components of fragments written in both buffers.
	ColourRMSE float64

	// DepthRMSE is the root mean square error across depth values of
	// fragments written in both buffers.
	DepthRMSE float64

	// MaxAbsDiff is the largest absolute colour component difference.
	MaxAbsDiff float64

	// Correlation is the Pearson correlation between the two buffers'
	// colour components.
	Correlation float64

	// MaskMismatches counts fragments written in one buffer but discarded
	// in the other.
	MaskMismatches int
}

// Compare computes the metrics between two framebuffers of equal size.
func Compare(a, b *render.Framebuffer) (Metrics, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return Metrics{}, fmt.Errorf("framebuffer sizes differ: %dx%d vs %dx%d",
			a.Width, a.Height, b.Width, b.Height)
	}

	var m Metrics
	var colourA, colourB []float64
	var sumSqColour, sumSqDepth float64
	var colourN, depthN int

	for i := 0; i < a.Width*a.Height; i++ {
		if a.Written[i] != b.Written[i] {
			m.MaskMismatches++
			continue
		}
		if !a.Written[i] {
			continue
		}
		for c := 0; c < 4; c++ {
			va := float64(a.Colour[i*4+c])
			vb := float64(b.Colour[i*4+c])
			colourA = append(colourA, va)
			colourB = append(colourB, vb)
			d := va - vb
			sumSqColour += d * d
			if ad := math.Abs(d); ad > m.MaxAbsDiff {
				m.MaxAbsDiff = ad
			}
			colourN++
		}
		dd := float64(a.Depth[i]) - float64(b.Depth[i])
		sumSqDepth += dd * dd
		depthN++
	}

	if colourN > 0 {
		m.ColourRMSE = math.Sqrt(sumSqColour / float64(colourN))
		m.Correlation = stat.Correlation(colourA, colourB, nil)
	}
	if depthN > 0 {
		m.DepthRMSE = math.Sqrt(sumSqDepth / float64(depthN))
	}

	return m, nil
}

// CoverageRatio returns the fraction of fragments written in a framebuffer.
func CoverageRatio(fb *render.Framebuffer) float64 {
	written := 0
	for _, w := range fb.Written {
		if w {
			written++
		}
	}
	return float64(written) / float64(len(fb.Written))
}
