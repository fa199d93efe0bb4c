// Package texture holds the read-only texture objects consumed by the ray
// casting core: 3D scalar volumes, 1D colour lookup tables, and the affine
// value-range transform that maps stored voxel values back to data units.
package texture

import (
	"fmt"

	"github.com/chewxy/math32"

	"volcast/internal/models"
	"volcast/pkg/geom"
)

// Volume is a 3D grid of scalar samples addressed by texture coordinates in
// [0,1]^3. The data layout is the flat row-major order used throughout the
// module (z*w*h + y*w + x). A Volume is immutable for the duration of a
// render; the renderer and all workers share one instance.
type Volume struct {
	data  []float32
	shape models.Shape

	// step is the inter-voxel distance along each axis in texture
	// coordinates, i.e. 1/width, 1/height, 1/depth.
	step geom.Vec3
}

// NewVolume wraps an existing data slice as a volume. The slice is not
// copied; the caller must not mutate it while a render is in flight.
func NewVolume(data []float32, shape models.Shape) (*Volume, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("invalid volume shape %dx%dx%d", shape.Width, shape.Height, shape.Depth)
	}
	if len(data) != shape.Count() {
		return nil, fmt.Errorf("volume data length %d does not match shape %dx%dx%d",
			len(data), shape.Width, shape.Height, shape.Depth)
	}
	return &Volume{
		data:  data,
		shape: shape,
		step: geom.Vec3{
			X: 1 / float32(shape.Width),
			Y: 1 / float32(shape.Height),
			Z: 1 / float32(shape.Depth),
		},
	}, nil
}

// Shape returns the voxel dimensions of the volume.
func (v *Volume) Shape() models.Shape { return v.shape }

// VoxelStep returns the inter-voxel step vector in texture coordinates.
func (v *Volume) VoxelStep() geom.Vec3 { return v.step }

// At returns the raw value of voxel (x, y, z) without interpolation or
// bounds checking.
func (v *Volume) At(x, y, z int) float32 {
	return v.data[v.shape.Index(x, y, z)]
}

// clampIndex clamps i into [0, n-1].
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// SampleNearest returns the value of the voxel nearest to texture
// coordinate p. Coordinates outside [0,1]^3 are clamped to the edge, as a
// GPU sampler with clamp-to-edge addressing would do; bounds-based ray
// termination is the caller's concern.
func (v *Volume) SampleNearest(p geom.Vec3) float32 {
	x := clampIndex(int(p.X*float32(v.shape.Width)), v.shape.Width)
	y := clampIndex(int(p.Y*float32(v.shape.Height)), v.shape.Height)
	z := clampIndex(int(p.Z*float32(v.shape.Depth)), v.shape.Depth)
	return v.data[v.shape.Index(x, y, z)]
}

// SampleTrilinear returns the trilinearly interpolated value at texture
// coordinate p, with clamp-to-edge addressing. NaN voxels propagate into
// the result, which the sampler relies on to reject partially-NaN
// neighbourhoods the same way GPU linear filtering does.
func (v *Volume) SampleTrilinear(p geom.Vec3) float32 {
	// Voxel-centre aligned continuous coordinates.
	fx := p.X*float32(v.shape.Width) - 0.5
	fy := p.Y*float32(v.shape.Height) - 0.5
	fz := p.Z*float32(v.shape.Depth) - 0.5

	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	z0 := int(math32.Floor(fz))

	tx := fx - float32(x0)
	ty := fy - float32(y0)
	tz := fz - float32(z0)

	x0c := clampIndex(x0, v.shape.Width)
	x1c := clampIndex(x0+1, v.shape.Width)
	y0c := clampIndex(y0, v.shape.Height)
	y1c := clampIndex(y0+1, v.shape.Height)
	z0c := clampIndex(z0, v.shape.Depth)
	z1c := clampIndex(z0+1, v.shape.Depth)

	c000 := v.At(x0c, y0c, z0c)
	c100 := v.At(x1c, y0c, z0c)
	c010 := v.At(x0c, y1c, z0c)
	c110 := v.At(x1c, y1c, z0c)
	c001 := v.At(x0c, y0c, z1c)
	c101 := v.At(x1c, y0c, z1c)
	c011 := v.At(x0c, y1c, z1c)
	c111 := v.At(x1c, y1c, z1c)

	c00 := c000 + (c100-c000)*tx
	c10 := c010 + (c110-c010)*tx
	c01 := c001 + (c101-c001)*tx
	c11 := c011 + (c111-c011)*tx

	c0 := c00 + (c10-c00)*ty
	c1 := c01 + (c11-c01)*ty

	return c0 + (c1-c0)*tz
}

// NewSphereVolume builds a synthetic volume containing a uniform-density
// sphere centred in the unit cube. Voxels inside the sphere hold inside,
// all others hold outside. radius is expressed in texture units.
func NewSphereVolume(shape models.Shape, radius, inside, outside float32) (*Volume, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("invalid volume shape %dx%dx%d", shape.Width, shape.Height, shape.Depth)
	}
	data := make([]float32, shape.Count())
	centre := geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	for z := 0; z < shape.Depth; z++ {
		for y := 0; y < shape.Height; y++ {
			for x := 0; x < shape.Width; x++ {
				p := geom.Vec3{
					X: (float32(x) + 0.5) / float32(shape.Width),
					Y: (float32(y) + 0.5) / float32(shape.Height),
					Z: (float32(z) + 0.5) / float32(shape.Depth),
				}
				if p.Sub(centre).Len() <= radius {
					data[shape.Index(x, y, z)] = inside
				} else {
					data[shape.Index(x, y, z)] = outside
				}
			}
		}
	}
	return NewVolume(data, shape)
}

// NewRampVolume builds a synthetic volume whose value increases linearly
// with the x texture coordinate from 0 to 1.
func NewRampVolume(shape models.Shape) (*Volume, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("invalid volume shape %dx%dx%d", shape.Width, shape.Height, shape.Depth)
	}
	data := make([]float32, shape.Count())
	for z := 0; z < shape.Depth; z++ {
		for y := 0; y < shape.Height; y++ {
			for x := 0; x < shape.Width; x++ {
				data[shape.Index(x, y, z)] = (float32(x) + 0.5) / float32(shape.Width)
			}
		}
	}
	return NewVolume(data, shape)
}

// NewUniformVolume builds a synthetic volume in which every voxel holds the
// same value. Useful for compositing tests where only the blend arithmetic
// is under scrutiny.
func NewUniformVolume(shape models.Shape, value float32) (*Volume, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("invalid volume shape %dx%dx%d", shape.Width, shape.Height, shape.Depth)
	}
	data := make([]float32, shape.Count())
	for i := range data {
		data[i] = value
	}
	return NewVolume(data, shape)
}
