package geom

// Plane is a clip plane in texture-coordinate space, stored as the equation
// A*x + B*y + C*z + D = 0. Points with a non-negative signed distance are on
// the keep side of the plane.
type Plane struct {
	A, B, C, D float32
}

// PlaneFromPointNormal builds a plane through p whose keep side is the half
// space the normal n points into.
func PlaneFromPointNormal(p, n Vec3) Plane {
	u := n.Norm()
	return Plane{u.X, u.Y, u.Z, -u.Dot(p)}
}

// SignedDistance returns the signed distance from p to the plane, positive
// on the keep side. The plane normal is assumed to be unit length.
func (pl Plane) SignedDistance(p Vec3) float32 {
	return pl.A*p.X + pl.B*p.Y + pl.C*p.Z + pl.D
}
