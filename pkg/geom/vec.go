// Package geom provides the small float32 vector and matrix types used by
// the volume rendering core. The core is float32 throughout to match the
// sampling and accumulation precision of the GPU pipelines it models.
package geom

import "github.com/chewxy/math32"

// Vec3 is a 3D point or direction in texture-coordinate space.
type Vec3 struct {
	X, Y, Z float32
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of two vectors.
func (a Vec3) Dot(b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Len returns the Euclidean length of the vector.
func (v Vec3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Norm returns a unit-length copy of v, or v unchanged if it has zero length.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Vec4 is a homogeneous coordinate or an RGBA colour, depending on context.
type Vec4 struct {
	X, Y, Z, W float32
}

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// XYZ drops the fourth component.
func (v Vec4) XYZ() Vec3 { return Vec3{v.X, v.Y, v.Z} }
