// Package raycast implements the volume ray casting core: the per-sample
// lookup/clip/colour routine, the bounds test that terminates rays, the
// screen-space dither generator, and the single-pass and multi-pass
// front-to-back compositing casters.
package raycast

import "volcast/pkg/geom"

// BoundsEpsilon is the tolerance applied to the unit-cube bounds test.
// Coordinates up to this far outside [0,1] still count as inside, so rays
// are not cut off abruptly at exact texture boundaries.
const BoundsEpsilon = 0.01

// InBounds reports whether texture coordinate p lies inside the unit cube,
// within BoundsEpsilon. A false result terminates a ray march.
func InBounds(p geom.Vec3) bool {
	return p.X >= -BoundsEpsilon && p.X <= 1+BoundsEpsilon &&
		p.Y >= -BoundsEpsilon && p.Y <= 1+BoundsEpsilon &&
		p.Z >= -BoundsEpsilon && p.Z <= 1+BoundsEpsilon
}

// InBounds2D is the planar variant used to reject fragments outside a 2D
// image footprint before any sampling happens.
func InBounds2D(x, y float32) bool {
	return x >= -BoundsEpsilon && x <= 1+BoundsEpsilon &&
		y >= -BoundsEpsilon && y <= 1+BoundsEpsilon
}
