package texture

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"volcast/pkg/geom"
)

// ValueTransform is the affine map from a volume's normalized stored value
// to true data units: value = raw*Scale + Offset. It is typically derived
// from the 4x4 voxel-to-data matrix supplied alongside an image texture, of
// which only the diagonal and translation terms are meaningful.
type ValueTransform struct {
	Scale  float32
	Offset float32
}

// IdentityValueTransform leaves stored values unchanged.
func IdentityValueTransform() ValueTransform {
	return ValueTransform{Scale: 1, Offset: 0}
}

// Apply maps a raw stored value into data units.
func (t ValueTransform) Apply(raw float32) float32 {
	return raw*t.Scale + t.Offset
}

// Invert returns the transform mapping data units back to stored values.
func (t ValueTransform) Invert() (ValueTransform, error) {
	if t.Scale == 0 {
		return ValueTransform{}, fmt.Errorf("value transform with zero scale is not invertible")
	}
	return ValueTransform{Scale: 1 / t.Scale, Offset: -t.Offset / t.Scale}, nil
}

// ValueTransformFromMat4 extracts the scalar value-range transform from a
// 4x4 affine matrix, consulting only the leading diagonal term and its
// translation component.
func ValueTransformFromMat4(m geom.Mat4) ValueTransform {
	return ValueTransform{Scale: m.M[0][0], Offset: m.M[0][3]}
}

// InvertMat4 returns the inverse of a 4x4 transform. The renderer uses this
// to derive the screen-to-texture transform from the supplied
// texture-to-screen one.
func InvertMat4(m geom.Mat4) (geom.Mat4, error) {
	d := mat.NewDense(4, 4, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			d.Set(r, c, float64(m.M[r][c]))
		}
	}
	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return geom.Mat4{}, fmt.Errorf("transform is singular: %v", err)
	}
	var out geom.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.M[r][c] = float32(inv.At(r, c))
		}
	}
	return out, nil
}
