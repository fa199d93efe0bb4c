package texture

import (
	"math"
	"testing"

	"volcast/pkg/geom"
)

// TestLUTEndpoints verifies clamping at and beyond the table ends
func TestLUTEndpoints(t *testing.T) {
	lut, err := Grayscale(256)
	if err != nil {
		t.Fatalf("Failed to build table: %v", err)
	}

	black := lut.Lookup(0)
	if black != (geom.Vec4{X: 0, Y: 0, Z: 0, W: 1}) {
		t.Errorf("Expected black at 0, got %v", black)
	}

	white := lut.Lookup(1)
	if white != (geom.Vec4{X: 1, Y: 1, Z: 1, W: 1}) {
		t.Errorf("Expected white at 1, got %v", white)
	}

	if lut.Lookup(-5) != black {
		t.Errorf("Expected lookup below 0 to clamp to the first entry")
	}
	if lut.Lookup(5) != white {
		t.Errorf("Expected lookup above 1 to clamp to the last entry")
	}
}

// TestLUTInterpolation verifies linear interpolation between entries
func TestLUTInterpolation(t *testing.T) {
	lut, err := NewLUT([]geom.Vec4{
		{X: 0, Y: 0, Z: 0, W: 0},
		{X: 1, Y: 1, Z: 1, W: 1},
	})
	if err != nil {
		t.Fatalf("Failed to build table: %v", err)
	}

	mid := lut.Lookup(0.5)
	if math.Abs(float64(mid.X-0.5)) > 1e-6 || math.Abs(float64(mid.W-0.5)) > 1e-6 {
		t.Errorf("Expected midpoint {0.5 0.5 0.5 0.5}, got %v", mid)
	}
}

// TestLUTTooFewEntries verifies that degenerate tables are rejected
func TestLUTTooFewEntries(t *testing.T) {
	if _, err := NewLUT([]geom.Vec4{{}}); err == nil {
		t.Errorf("Expected single-entry table to be rejected")
	}
	if _, err := Grayscale(1); err == nil {
		t.Errorf("Expected single-entry grayscale table to be rejected")
	}
}

// TestHotCoolTables verifies the overlay tables keep full opacity and the
// expected hue progression
func TestHotCoolTables(t *testing.T) {
	hot, err := Hot(256)
	if err != nil {
		t.Fatalf("Failed to build hot table: %v", err)
	}
	low := hot.Lookup(0.2)
	if low.X <= low.Y {
		t.Errorf("Expected red to lead in the hot table, got %v", low)
	}
	high := hot.Lookup(1)
	if high != (geom.Vec4{X: 1, Y: 1, Z: 1, W: 1}) {
		t.Errorf("Expected white at the top of the hot table, got %v", high)
	}

	cool, err := Cool(256)
	if err != nil {
		t.Fatalf("Failed to build cool table: %v", err)
	}
	mid := cool.Lookup(0.4)
	if mid.Z <= mid.Y {
		t.Errorf("Expected blue to lead in the cool table, got %v", mid)
	}
	if mid.W != 1 {
		t.Errorf("Expected full opacity in the cool table, got %f", mid.W)
	}
}
