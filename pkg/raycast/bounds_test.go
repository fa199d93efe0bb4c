package raycast

import (
	"testing"

	"volcast/pkg/geom"
)

// TestInBounds verifies the unit-cube membership test
func TestInBounds(t *testing.T) {
	inside := []geom.Vec3{
		{X: 0.5, Y: 0.5, Z: 0.5},
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
	}
	for _, p := range inside {
		if !InBounds(p) {
			t.Errorf("Expected %v to be inside the unit cube", p)
		}
	}

	outside := []geom.Vec3{
		{X: -0.5, Y: 0.5, Z: 0.5},
		{X: 0.5, Y: 1.5, Z: 0.5},
		{X: 0.5, Y: 0.5, Z: -2},
		{X: 2, Y: 2, Z: 2},
	}
	for _, p := range outside {
		if InBounds(p) {
			t.Errorf("Expected %v to be outside the unit cube", p)
		}
	}
}

// TestInBoundsEpsilon verifies that coordinates just past an exact boundary
// still count as inside, so rays are not clipped abruptly at texture edges
func TestInBoundsEpsilon(t *testing.T) {
	if !InBounds(geom.Vec3{X: -0.005, Y: 0.5, Z: 0.5}) {
		t.Errorf("Expected coordinate within tolerance below 0 to be inside")
	}
	if !InBounds(geom.Vec3{X: 0.5, Y: 1.005, Z: 0.5}) {
		t.Errorf("Expected coordinate within tolerance above 1 to be inside")
	}
	if InBounds(geom.Vec3{X: -0.02, Y: 0.5, Z: 0.5}) {
		t.Errorf("Expected coordinate beyond tolerance to be outside")
	}
	if InBounds(geom.Vec3{X: 0.5, Y: 1.02, Z: 0.5}) {
		t.Errorf("Expected coordinate beyond tolerance to be outside")
	}
}

// TestInBounds2D verifies the planar footprint test
func TestInBounds2D(t *testing.T) {
	if !InBounds2D(0.5, 0.5) {
		t.Errorf("Expected (0.5, 0.5) to be inside the footprint")
	}
	if !InBounds2D(1.005, 0) {
		t.Errorf("Expected coordinate within tolerance to be inside the footprint")
	}
	if InBounds2D(1.5, 0.5) || InBounds2D(0.5, -0.5) {
		t.Errorf("Expected coordinates beyond tolerance to be outside the footprint")
	}
}
