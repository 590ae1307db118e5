package follow

import (
	"math"
	"testing"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/additionsdigital/gradientfollow/pkg/render"
)

func newOrbitCamera(z float64) *render.Camera {
	c := render.NewCamera(math.Pi/4, 2, 1, 10000)
	c.SetPosition(math3d.V3(0, 0, z))
	return c
}

func settle(o *OrbitRestriction, frames int) {
	for range frames {
		o.Update()
	}
}

func TestOrbitRestrictionDefaults(t *testing.T) {
	o := NewOrbitRestriction(newOrbitCamera(500), 60)

	if o.EnableKeys || o.EnablePan || o.EnableRotate || !o.EnableZoom {
		t.Errorf("enabled = keys %v pan %v rotate %v zoom %v", o.EnableKeys, o.EnablePan, o.EnableRotate, o.EnableZoom)
	}
	if o.MinDistance != 500 || o.MaxDistance != 9999 {
		t.Errorf("limits = [%v, %v]", o.MinDistance, o.MaxDistance)
	}
}

func TestOrbitZoom(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		want  float64
	}{
		{"zoom in is clamped at the start distance", -3, 500},
		{"one notch out", 1, 500 / 0.95},
		{"two notches out", 2, 500 / 0.95 / 0.95},
		{"clamped at max", 1000, 9999},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := newOrbitCamera(500)
			o := NewOrbitRestriction(cam, 60)
			o.Zoom(tc.steps)

			if math.Abs(o.Target()-tc.want) > 1e-6 {
				t.Errorf("Target = %v, want %v", o.Target(), tc.want)
			}
			settle(o, 600)
			if math.Abs(cam.Position.Z-tc.want) > 1e-6 {
				t.Errorf("camera settled at %v, want %v", cam.Position.Z, tc.want)
			}
		})
	}
}

func TestOrbitAtRestLeavesCamera(t *testing.T) {
	cam := newOrbitCamera(500)
	o := NewOrbitRestriction(cam, 60)
	settle(o, 100)
	if cam.Position.Z != 500 {
		t.Errorf("camera drifted to %v", cam.Position.Z)
	}
}

func TestOrbitSpringEases(t *testing.T) {
	cam := newOrbitCamera(500)
	o := NewOrbitRestriction(cam, 60)
	o.Zoom(5)

	o.Update()
	first := cam.Position.Z
	if first <= 500 || first >= o.Target() {
		t.Errorf("first frame at %v, want between 500 and %v", first, o.Target())
	}

	// Critically damped: never overshoots.
	for range 300 {
		o.Update()
		if cam.Position.Z > o.Target()+1e-9 {
			t.Fatalf("overshoot to %v", cam.Position.Z)
		}
	}
}

func TestOrbitDispose(t *testing.T) {
	cam := newOrbitCamera(500)
	o := NewOrbitRestriction(cam, 60)
	o.Dispose()
	o.Zoom(3)

	if !o.Disposed() {
		t.Error("Disposed = false")
	}
	if o.Target() != 500 {
		t.Errorf("disposed helper accepted zoom: target %v", o.Target())
	}
}

func TestScrollLatch(t *testing.T) {
	cam := newOrbitCamera(500)
	o := NewOrbitRestriction(cam, 60)
	var l ScrollLatch

	if l.Check(cam, o) || l.Started() {
		t.Fatal("latch fired at the minimum distance")
	}

	o.Zoom(1)
	o.Update()
	if !l.Check(cam, o) {
		t.Fatal("latch did not fire past the minimum distance")
	}
	if !l.Started() || !o.Disposed() {
		t.Errorf("started %v disposed %v", l.Started(), o.Disposed())
	}

	// One-shot: later checks never fire again, even after moving back.
	cam.SetPosition(math3d.V3(0, 0, 400))
	cam.SetPosition(math3d.V3(0, 0, 900))
	if l.Check(cam, o) {
		t.Error("latch fired twice")
	}
	if !l.Started() {
		t.Error("latch reset")
	}
}
