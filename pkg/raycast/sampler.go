package raycast

import (
	"fmt"

	"github.com/chewxy/math32"

	"volcast/pkg/geom"
	"volcast/pkg/texture"
)

// Sampler is the common per-sample routine shared by every caster: it looks
// up a voxel, applies the value-range transform, performs clip and NaN
// rejection, and maps the value through a positive or negative colour table.
type Sampler struct {
	// Image is the volume being rendered.
	Image *texture.Volume

	// Clip optionally holds a distinct volume used purely for clip testing.
	// When ImageIsClip is set (or Clip is nil) the image volume doubles as
	// the clip volume and the redundant second lookup is skipped.
	Clip        *texture.Volume
	ImageIsClip bool

	// ValueXform maps the stored normalized value to data units.
	ValueXform texture.ValueTransform

	// LUTCoord maps a value in data units to a coordinate in [0,1] for the
	// 1D colour table lookup.
	LUTCoord texture.ValueTransform

	// PosLUT and NegLUT are the positive- and negative-domain colour
	// tables. NegLUT is consulted only when UseNegLUT is set.
	PosLUT *texture.LUT
	NegLUT *texture.LUT

	// UseNegLUT enables the sign test: values below TexZero are reflected
	// about TexZero and mapped through NegLUT instead of PosLUT.
	UseNegLUT bool
	TexZero   float32

	// ClipLow, ClipHigh and InvertClip configure the clip window, in data
	// units. With InvertClip false a value inside [ClipLow, ClipHigh] is
	// rejected; with InvertClip true a value outside it is rejected.
	ClipLow    float32
	ClipHigh   float32
	InvertClip bool

	// Modulate optionally darkens each sample by a secondary volume.
	// ModulateAlpha selects whether the modulate value scales the sample's
	// alpha instead of its brightness.
	Modulate      *texture.Volume
	ModulateAlpha bool
}

// Validate checks the sampler's caller-supplied configuration once, before
// a render starts, so the per-sample path can stay check-free.
func (s *Sampler) Validate() error {
	if s.Image == nil {
		return fmt.Errorf("sampler has no image volume")
	}
	if s.PosLUT == nil {
		return fmt.Errorf("sampler has no colour table")
	}
	if s.UseNegLUT && s.NegLUT == nil {
		return fmt.Errorf("negative colour mapping enabled but no negative table supplied")
	}
	if s.ClipHigh < s.ClipLow {
		return fmt.Errorf("clip window [%g, %g] is reversed", s.ClipLow, s.ClipHigh)
	}
	return nil
}

// Sample evaluates the volume at texture coordinate p, with clipCoord
// addressing the clip volume. Most callers pass the same coordinate for
// both. It returns killed=true when the sample must not contribute
// (NaN value or clipped), together with the mapped colour and the
// transformed value for samples that survive.
func (s *Sampler) Sample(p, clipCoord geom.Vec3) (killed bool, colour geom.Vec4, value float32) {
	raw := s.Image.SampleTrilinear(p)
	value = s.ValueXform.Apply(raw)

	// NaN anywhere in the interpolation neighbourhood poisons the value;
	// such samples never contribute.
	if math32.IsNaN(value) {
		return true, geom.Vec4{}, value
	}

	clipValue := value
	if s.Clip != nil && !s.ImageIsClip {
		clipValue = s.ValueXform.Apply(s.Clip.SampleTrilinear(clipCoord))
		if math32.IsNaN(clipValue) {
			return true, geom.Vec4{}, value
		}
	}

	inWindow := clipValue >= s.ClipLow && clipValue <= s.ClipHigh
	if inWindow != s.InvertClip {
		return true, geom.Vec4{}, value
	}

	// Sign test: negative-domain values are reflected about the zero point
	// so both tables are addressed with increasing magnitude.
	lutValue := value
	lut := s.PosLUT
	if s.UseNegLUT && value < s.TexZero {
		lutValue = s.TexZero + (s.TexZero - value)
		lut = s.NegLUT
	}

	colour = lut.Lookup(s.LUTCoord.Apply(lutValue))

	if s.Modulate != nil {
		mod := s.Modulate.SampleTrilinear(p)
		if math32.IsNaN(mod) {
			mod = 0
		}
		mod = clamp01(mod)
		if s.ModulateAlpha {
			colour.W *= mod
		} else {
			colour.X *= mod
			colour.Y *= mod
			colour.Z *= mod
		}
	}

	return false, colour, value
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
