package geom

// Mat4 is a 4x4 row-major matrix. It is used for the value-range transform
// supplied with a volume texture and for the texture-to-screen transform
// used when converting a ray position into a depth value.
type Mat4 struct {
	M [4][4]float32
}

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{M: [4][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Translate returns a translation matrix.
func Translate(t Vec3) Mat4 {
	m := Identity()
	m.M[0][3] = t.X
	m.M[1][3] = t.Y
	m.M[2][3] = t.Z
	return m
}

// ScaleUniformAxes returns a matrix scaling each axis independently.
func ScaleUniformAxes(s Vec3) Mat4 {
	m := Identity()
	m.M[0][0] = s.X
	m.M[1][1] = s.Y
	m.M[2][2] = s.Z
	return m
}

// Mul returns the matrix product A*B.
func (A Mat4) Mul(B Mat4) Mat4 {
	var R Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += A.M[r][k] * B.M[k][c]
			}
			R.M[r][c] = sum
		}
	}
	return R
}

// MulVec transforms a homogeneous coordinate.
func (A Mat4) MulVec(v Vec4) Vec4 {
	return Vec4{
		A.M[0][0]*v.X + A.M[0][1]*v.Y + A.M[0][2]*v.Z + A.M[0][3]*v.W,
		A.M[1][0]*v.X + A.M[1][1]*v.Y + A.M[1][2]*v.Z + A.M[1][3]*v.W,
		A.M[2][0]*v.X + A.M[2][1]*v.Y + A.M[2][2]*v.Z + A.M[2][3]*v.W,
		A.M[3][0]*v.X + A.M[3][1]*v.Y + A.M[3][2]*v.Z + A.M[3][3]*v.W,
	}
}

// TransformPoint applies the matrix to a 3D point with w=1 and performs the
// perspective divide when the resulting w differs from 1.
func (A Mat4) TransformPoint(p Vec3) Vec3 {
	h := A.MulVec(Vec4{p.X, p.Y, p.Z, 1})
	if h.W != 0 && h.W != 1 {
		inv := 1 / h.W
		return Vec3{h.X * inv, h.Y * inv, h.Z * inv}
	}
	return h.XYZ()
}

// Transpose returns the transposed matrix.
func (A Mat4) Transpose() Mat4 {
	var R Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			R.M[r][c] = A.M[c][r]
		}
	}
	return R
}
