package scene

import (
	"math"
	"testing"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/additionsdigital/gradientfollow/pkg/render"
)

const eps = 1e-9

func TestViewportBucket(t *testing.T) {
	tests := []struct {
		vp   Viewport
		want int
	}{
		{Viewport{1000, 500}, 2},
		{Viewport{1100, 500}, 2},
		{Viewport{1499, 500}, 2},
		{Viewport{1500, 500}, 3},
		{Viewport{400, 800}, 0},
		{Viewport{800, 800}, 1},
	}
	for _, tc := range tests {
		if got := tc.vp.Bucket(); got != tc.want {
			t.Errorf("%v.Bucket() = %d, want %d", tc.vp, got, tc.want)
		}
	}
}

func TestBuild(t *testing.T) {
	s := Build(Viewport{1000, 500}, DefaultOptions())

	if s.Bucket != 2 {
		t.Errorf("Bucket = %d, want 2", s.Bucket)
	}
	if got := s.Camera.Position; got != math3d.V3(0, 0, 500) {
		t.Errorf("camera at %v, want z=500", got)
	}
	if s.Camera.FOV != math.Pi/4 || s.Camera.Near != 1 || s.Camera.Far != 10000 {
		t.Errorf("camera projection = %v/%v/%v", s.Camera.FOV, s.Camera.Near, s.Camera.Far)
	}
	if math.Abs(s.Camera.AspectRatio-2) > eps {
		t.Errorf("aspect = %v", s.Camera.AspectRatio)
	}

	size := s.Mesh.Size()
	if math.Abs(size.Y-1000) > eps {
		t.Errorf("cylinder length = %v, want 1000", size.Y)
	}
	if math.Abs(size.X-500) > 1e-6 || math.Abs(size.Z-500) > 1e-6 {
		t.Errorf("cylinder diameter = %v x %v, want 500", size.X, size.Z)
	}
	if tris := s.Mesh.TriangleCount(); tris != 4*RadialSegments {
		t.Errorf("triangles = %d", tris)
	}

	if s.MeshRotationZ != math.Pi/2 || s.MeshScaleX != 1 {
		t.Errorf("mesh transform = %v, %v", s.MeshRotationZ, s.MeshScaleX)
	}
	if s.Background != render.ColorWhite {
		t.Errorf("background = %v", s.Background)
	}

	if got := render.ToRGBA(s.Hemisphere.Sky); got != render.RGB(0x00, 0xff, 0xe1) {
		t.Errorf("hemisphere sky = %v", got)
	}
	if got := render.ToRGBA(s.Hemisphere.Ground); got != render.RGB(0xff, 0x4e, 0x18) {
		t.Errorf("hemisphere ground = %v", got)
	}
	for name, l := range map[string]*render.SpotLight{"sky": s.SkyLight, "ground": s.GroundLight} {
		if l.Intensity != 0.5 || l.Angle != 1 || l.Penumbra != 1 || l.Decay != 1 {
			t.Errorf("%s spot = %+v", name, l)
		}
		if math.Abs(l.Distance-500.0/3) > eps {
			t.Errorf("%s spot distance = %v", name, l.Distance)
		}
		if l.Target != math3d.Zero3() {
			t.Errorf("%s spot target = %v", name, l.Target)
		}
	}
}

func TestModelMatrixLiesAlongX(t *testing.T) {
	s := Build(Viewport{1000, 500}, DefaultOptions())

	// The cylinder's top centre ends up on -X after the quarter turn.
	top := s.ModelMatrix().MulVec3(math3d.V3(0, 500, 0))
	if math.Abs(top.X+500) > 1e-6 || math.Abs(top.Y) > 1e-6 {
		t.Errorf("top centre at %v, want (-500, 0, 0)", top)
	}

	// Scale X stretches the radius along world Y.
	s.MeshScaleX = 2
	rim := s.ModelMatrix().MulVec3(math3d.V3(250, 0, 0))
	if math.Abs(rim.Y-500) > 1e-6 || math.Abs(rim.X) > 1e-6 {
		t.Errorf("scaled rim at %v, want (0, 500, 0)", rim)
	}
}

func TestResizeKeepsCamera(t *testing.T) {
	s := Build(Viewport{1000, 500}, DefaultOptions())
	s.Resize(Viewport{1200, 500})

	if got := s.Camera.Position; got != math3d.V3(0, 0, 500) {
		t.Errorf("camera moved to %v", got)
	}
	if math.Abs(s.Camera.AspectRatio-2.4) > eps {
		t.Errorf("aspect = %v, want 2.4", s.Camera.AspectRatio)
	}
	if s.Bucket != 2 {
		t.Errorf("bucket changed to %d", s.Bucket)
	}
}

func TestRender(t *testing.T) {
	vp := Viewport{120, 60}
	s := Build(vp, DefaultOptions())
	fb := render.NewFramebuffer(120, 60)
	r := render.NewRasterizer(s.Camera, fb)
	r.CullBackFaces = true

	s.Render(r, fb)

	// Seen from z = height the cylinder fills the whole view.
	for i, p := range fb.Pixels {
		if p == render.ColorWhite {
			t.Fatalf("pixel (%d, %d) is background", i%fb.Width, i/fb.Width)
		}
	}
	if r.TrianglesDrawn == 0 {
		t.Error("no triangles drawn")
	}
}

func BenchmarkRender(b *testing.B) {
	s := Build(Viewport{200, 100}, DefaultOptions())
	fb := render.NewFramebuffer(200, 100)
	r := render.NewRasterizer(s.Camera, fb)
	r.CullBackFaces = true

	for b.Loop() {
		s.Render(r, fb)
	}
}
