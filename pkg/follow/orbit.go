package follow

import (
	"math"

	"github.com/additionsdigital/gradientfollow/pkg/render"
	"github.com/charmbracelet/harmonica"
)

// Orbit limits.
const (
	MaxOrbitDistance = 9999.0
	ZoomScale        = 0.95
)

// OrbitRestriction is a camera orbit helper with everything but zoom turned
// off. Zoom dollies the camera along its view axis between MinDistance and
// MaxDistance, eased with a critically damped spring.
type OrbitRestriction struct {
	EnableKeys   bool
	EnablePan    bool
	EnableRotate bool
	EnableZoom   bool

	MinDistance float64
	MaxDistance float64

	camera   *render.Camera
	spring   harmonica.Spring
	target   float64
	velocity float64
	disposed bool
}

// NewOrbitRestriction attaches a helper to camera. The minimum distance is
// the camera's distance right now, so the helper can only zoom out.
func NewOrbitRestriction(camera *render.Camera, fps int) *OrbitRestriction {
	d := camera.Position.Z
	return &OrbitRestriction{
		EnableZoom:  true,
		MinDistance: d,
		MaxDistance: MaxOrbitDistance,
		camera:      camera,
		// Frequency 6.0 = fast settle, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 1.0),
		target: d,
	}
}

// Zoom dollies by steps wheel notches. Positive steps move away from the
// origin. It does nothing once the helper is disposed or zoom is off.
func (o *OrbitRestriction) Zoom(steps int) {
	if o.disposed || !o.EnableZoom || steps == 0 {
		return
	}
	o.target *= math.Pow(1/ZoomScale, float64(steps))
	o.target = min(max(o.target, o.MinDistance), o.MaxDistance)
}

// Update advances the spring one frame and moves the camera. A settled
// helper leaves the camera untouched.
func (o *OrbitRestriction) Update() {
	z := o.camera.Position.Z
	if z == o.target && o.velocity == 0 {
		return
	}

	z, o.velocity = o.spring.Update(z, o.velocity, o.target)
	if math.Abs(z-o.target) < 1e-3 && math.Abs(o.velocity) < 1e-3 {
		z, o.velocity = o.target, 0
	}
	pos := o.camera.Position
	pos.Z = z
	o.camera.SetPosition(pos)
}

// Target returns the distance the helper is easing toward.
func (o *OrbitRestriction) Target() float64 { return o.target }

// Dispose stops the helper from reacting to input. A zoom already in flight
// still settles.
func (o *OrbitRestriction) Dispose() { o.disposed = true }

// Disposed reports whether Dispose was called.
func (o *OrbitRestriction) Disposed() bool { return o.disposed }

// ScrollLatch records, once per session, that the camera was pulled back
// past the orbit helper's minimum distance.
type ScrollLatch struct {
	started bool
}

// Check sets the latch and disposes o the first time the camera is beyond
// o.MinDistance. It reports whether the latch fired on this call.
func (l *ScrollLatch) Check(camera *render.Camera, o *OrbitRestriction) bool {
	if l.started || camera.Position.Z <= o.MinDistance {
		return false
	}
	l.started = true
	o.Dispose()
	return true
}

// Started reports whether the latch has fired.
func (l *ScrollLatch) Started() bool { return l.started }
