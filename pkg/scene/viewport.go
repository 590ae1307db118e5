package scene

import "math"

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height float64
}

// Aspect returns width / height.
func (v Viewport) Aspect() float64 {
	return v.Width / v.Height
}

// Bucket returns floor(width / height). The scene is rebuilt whenever the
// bucket changes.
func (v Viewport) Bucket() int {
	return int(math.Floor(v.Width / v.Height))
}
