package geom

import (
	"math"
	"testing"
)

const tol = 1e-6

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < tol
}

// TestVec3Operations verifies the basic vector arithmetic the casters
// depend on
func TestVec3Operations(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Expected Add to give {5 7 9}, got %v", sum)
	}

	diff := b.Sub(a)
	if diff != (Vec3{3, 3, 3}) {
		t.Errorf("Expected Sub to give {3 3 3}, got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled != (Vec3{2, 4, 6}) {
		t.Errorf("Expected Scale to give {2 4 6}, got %v", scaled)
	}

	dot := a.Dot(b)
	if !almostEqual(dot, 32) {
		t.Errorf("Expected Dot to give 32, got %f", dot)
	}
}

// TestVec3Norm verifies normalization, including the zero-vector case
func TestVec3Norm(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Norm()
	if !almostEqual(n.Len(), 1) {
		t.Errorf("Expected unit length after Norm, got %f", n.Len())
	}
	if !almostEqual(n.X, 0.6) || !almostEqual(n.Z, 0.8) {
		t.Errorf("Expected Norm to give {0.6 0 0.8}, got %v", n)
	}

	zero := Vec3{}
	if zero.Norm() != zero {
		t.Errorf("Expected Norm of zero vector to stay zero, got %v", zero.Norm())
	}
}

// TestMat4Identity verifies that the identity transform leaves points
// unchanged
func TestMat4Identity(t *testing.T) {
	p := Vec3{0.1, 0.2, 0.3}
	q := Identity().TransformPoint(p)
	if q != p {
		t.Errorf("Expected identity transform to preserve %v, got %v", p, q)
	}
}

// TestMat4TranslateScale verifies the affine building blocks used for
// screen-to-texture transforms
func TestMat4TranslateScale(t *testing.T) {
	m := Translate(Vec3{1, 2, 3}).Mul(ScaleUniformAxes(Vec3{2, 2, 2}))
	p := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{3, 4, 5}
	if !almostEqual(p.X, want.X) || !almostEqual(p.Y, want.Y) || !almostEqual(p.Z, want.Z) {
		t.Errorf("Expected transform to give %v, got %v", want, p)
	}
}

// TestMat4MulVec verifies that direction vectors (w=0) ignore translation
func TestMat4MulVec(t *testing.T) {
	m := Translate(Vec3{5, 5, 5})
	d := m.MulVec(Vec4{0, 0, 1, 0})
	if d != (Vec4{0, 0, 1, 0}) {
		t.Errorf("Expected translation to leave direction unchanged, got %v", d)
	}
}

// TestMat4Transpose verifies transposition round-trips
func TestMat4Transpose(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	tt := m.Transpose().Transpose()
	if tt != m {
		t.Errorf("Expected double transpose to round-trip, got %v", tt)
	}
	if m.Transpose().M[3][0] != 1 {
		t.Errorf("Expected translation to move to bottom row after transpose")
	}
}

// TestPlaneSignedDistance verifies the keep-side convention: positive
// distance on the side the normal points into
func TestPlaneSignedDistance(t *testing.T) {
	// Plane x = 0.5 keeping the +x side
	pl := PlaneFromPointNormal(Vec3{0.5, 0, 0}, Vec3{1, 0, 0})

	if d := pl.SignedDistance(Vec3{0.75, 0.5, 0.5}); !almostEqual(d, 0.25) {
		t.Errorf("Expected signed distance 0.25 on keep side, got %f", d)
	}
	if d := pl.SignedDistance(Vec3{0.25, 0.5, 0.5}); !almostEqual(d, -0.25) {
		t.Errorf("Expected signed distance -0.25 on clipped side, got %f", d)
	}
	if d := pl.SignedDistance(Vec3{0.5, 0.9, 0.1}); !almostEqual(d, 0) {
		t.Errorf("Expected zero distance on the plane, got %f", d)
	}
}

// TestPlaneFromPointNormalNormalizes verifies that non-unit normals are
// normalized during construction
func TestPlaneFromPointNormalNormalizes(t *testing.T) {
	pl := PlaneFromPointNormal(Vec3{0, 0, 0}, Vec3{0, 0, 10})
	if d := pl.SignedDistance(Vec3{0, 0, 2}); !almostEqual(d, 2) {
		t.Errorf("Expected distance 2 with normalized plane normal, got %f", d)
	}
}
