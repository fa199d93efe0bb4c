package raycast

import "github.com/chewxy/math32"

// Constants of the classic sine-fractional screen-space hash. They have no
// structure worth reading into; they merely decorrelate neighbouring
// fragments well.
const (
	ditherA = 12.9898
	ditherB = 78.233
	ditherC = 43758.5453
)

// Dither returns a pseudo-random scalar in [0,1) derived from a screen
// coordinate. It is a pure function: the same (x, y) always produces the
// same value, so jitter is stable across frames and across passes. Jittering
// each ray's origin by this amount breaks up the banding produced by a
// fixed step size.
func Dither(x, y float32) float32 {
	s := math32.Sin(x*ditherA+y*ditherB) * ditherC
	return s - math32.Floor(s)
}
