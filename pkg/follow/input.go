package follow

import (
	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/additionsdigital/gradientfollow/pkg/scene"
)

// Device tilt ranges, in degrees, that map onto the full [0, 1] input.
const (
	GammaMin = -25.0
	GammaMax = 25.0
	BetaMin  = 30.0
	BetaMax  = 65.0
)

// InputVector is the normalized pointer or tilt position. (0, 0) is the top
// left of the viewport and (1, 1) the bottom right. Pointer input is not
// clamped, so values may leave [0, 1].
type InputVector struct {
	X, Y float64
}

// Split returns the input remapped to [-1, 1] on X, the form most of the
// mapping works with.
func (in InputVector) Split() float64 {
	return in.X*2 - 1
}

// PointerVector normalizes a pointer position in viewport pixels.
func PointerVector(x, y float64, vp scene.Viewport) InputVector {
	return InputVector{X: x / vp.Width, Y: y / vp.Height}
}

// OrientationVector maps a device tilt onto the input. gamma is the left to
// right tilt and beta the front to back tilt. ok is false when either angle
// is missing.
func OrientationVector(gamma, beta *float64) (in InputVector, ok bool) {
	if gamma == nil || beta == nil {
		return in, false
	}
	in.X = math3d.Saturate(*gamma/(GammaMax-GammaMin) + 0.5)
	in.Y = math3d.Saturate((*beta - BetaMin) / (BetaMax - BetaMin))
	return in, true
}
