package texture

import (
	"fmt"

	"volcast/pkg/geom"
)

// LUT is a 1D RGBA colour lookup table addressed by a coordinate in [0,1].
// Lookups outside that range clamp to the end entries, matching
// clamp-to-edge addressing on a 1D texture. The core treats LUT contents as
// opaque; the builders below exist for the demo binary and for tests.
type LUT struct {
	entries []geom.Vec4
}

// NewLUT wraps a list of RGBA entries as a lookup table.
func NewLUT(entries []geom.Vec4) (*LUT, error) {
	if len(entries) < 2 {
		return nil, fmt.Errorf("colour table needs at least 2 entries, got %d", len(entries))
	}
	return &LUT{entries: entries}, nil
}

// Len returns the number of entries in the table.
func (l *LUT) Len() int { return len(l.entries) }

// Lookup returns the linearly interpolated colour at coordinate t in [0,1].
func (l *LUT) Lookup(t float32) geom.Vec4 {
	if t <= 0 {
		return l.entries[0]
	}
	if t >= 1 {
		return l.entries[len(l.entries)-1]
	}
	f := t * float32(len(l.entries)-1)
	i := int(f)
	frac := f - float32(i)
	a := l.entries[i]
	b := l.entries[i+1]
	return a.Add(b.Sub(a).Scale(frac))
}

// Grayscale builds an n-entry black-to-white table with full opacity.
func Grayscale(n int) (*LUT, error) {
	if n < 2 {
		return nil, fmt.Errorf("colour table needs at least 2 entries, got %d", n)
	}
	entries := make([]geom.Vec4, n)
	for i := range entries {
		v := float32(i) / float32(n-1)
		entries[i] = geom.Vec4{X: v, Y: v, Z: v, W: 1}
	}
	return NewLUT(entries)
}

// Hot builds an n-entry black-red-yellow-white table, the conventional map
// for positive statistical overlays.
func Hot(n int) (*LUT, error) {
	if n < 2 {
		return nil, fmt.Errorf("colour table needs at least 2 entries, got %d", n)
	}
	entries := make([]geom.Vec4, n)
	for i := range entries {
		v := float32(i) / float32(n-1)
		r := clamp01(v * 3)
		g := clamp01(v*3 - 1)
		b := clamp01(v*3 - 2)
		entries[i] = geom.Vec4{X: r, Y: g, Z: b, W: 1}
	}
	return NewLUT(entries)
}

// Cool builds an n-entry black-blue-cyan table, the conventional map for
// negative statistical overlays.
func Cool(n int) (*LUT, error) {
	if n < 2 {
		return nil, fmt.Errorf("colour table needs at least 2 entries, got %d", n)
	}
	entries := make([]geom.Vec4, n)
	for i := range entries {
		v := float32(i) / float32(n-1)
		b := clamp01(v * 2)
		g := clamp01(v*2 - 1)
		entries[i] = geom.Vec4{X: 0, Y: g, Z: b, W: 1}
	}
	return NewLUT(entries)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
