package render

import (
	"math"
	"testing"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/lucasb-eyer/go-colorful"
)

// mockMesh implements MeshRenderer for testing.
type mockMesh struct {
	pos     []math3d.Vec3
	normals []math3d.Vec3
	faces   [][3]int
}

func (m *mockMesh) VertexCount() int     { return len(m.pos) }
func (m *mockMesh) TriangleCount() int   { return len(m.faces) }
func (m *mockMesh) GetFace(i int) [3]int { return m.faces[i] }
func (m *mockMesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	return m.pos[i], m.normals[i], math3d.Vec2{}
}

// createTestRasterizer creates a rasterizer looking at the origin from +Z.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	camera := NewCamera(math.Pi/4, float64(width)/float64(height), 1, 100)
	camera.SetPosition(math3d.V3(0, 0, 10))
	r := NewRasterizer(camera, fb)
	r.ClearDepth()
	fb.Clear(ColorBlack)
	return r, fb
}

func solid(p0, p1, p2 math3d.Vec3, c colorful.Color) Triangle {
	return Triangle{V: [3]Vertex{{p0, c}, {p1, c}, {p2, c}}}
}

// ccw is a small counter-clockwise triangle around the origin facing +Z.
var ccw = [3]math3d.Vec3{
	math3d.V3(-2, -2, 0),
	math3d.V3(2, -2, 0),
	math3d.V3(0, 2, 0),
}

func countLit(fb *Framebuffer) int {
	n := 0
	for _, p := range fb.Pixels {
		if p.R > 0 || p.G > 0 || p.B > 0 {
			n++
		}
	}
	return n
}

func TestEdgeCoeffs(t *testing.T) {
	a, b, c := edgeCoeffs(0, 0, 1, 0)
	// Point below the edge in screen space (y down) is on the positive side.
	if got := a*0.5 + b*1 + c; got <= 0 {
		t.Errorf("edge value = %v, want > 0", got)
	}
	if got := a*0.5 + b*0 + c; got != 0 {
		t.Errorf("edge value on the edge = %v, want 0", got)
	}
}

func TestDrawTriangleEitherWinding(t *testing.T) {
	tests := []struct {
		name     string
		tri      Triangle
		cull     bool
		wantDraw bool
	}{
		{"front ccw", solid(ccw[0], ccw[1], ccw[2], colorful.Color{R: 1}), false, true},
		{"back cw", solid(ccw[0], ccw[2], ccw[1], colorful.Color{R: 1}), false, true},
		{"front ccw with culling", solid(ccw[0], ccw[1], ccw[2], colorful.Color{R: 1}), true, true},
		{"back cw with culling", solid(ccw[0], ccw[2], ccw[1], colorful.Color{R: 1}), true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRasterizer(64, 64)
			r.CullBackFaces = tc.cull
			r.DrawTriangle(tc.tri)

			drawn := countLit(fb) > 0
			if drawn != tc.wantDraw {
				t.Errorf("drawn = %v, want %v", drawn, tc.wantDraw)
			}
			if drawn {
				if c := fb.GetPixel(32, 32); c.R != 255 {
					t.Errorf("centre pixel = %v, want red", c)
				}
			}
		})
	}
}

func TestDrawTriangleDepth(t *testing.T) {
	r, fb := createTestRasterizer(64, 64)

	near := solid(ccw[0].Add(math3d.V3(0, 0, 1)), ccw[1].Add(math3d.V3(0, 0, 1)), ccw[2].Add(math3d.V3(0, 0, 1)), colorful.Color{G: 1})
	far := solid(ccw[0], ccw[1], ccw[2], colorful.Color{B: 1})

	// Near first: the far triangle must not overwrite it.
	r.DrawTriangle(near)
	r.DrawTriangle(far)

	if c := fb.GetPixel(32, 32); c.G != 255 || c.B != 0 {
		t.Errorf("centre pixel = %v, want the nearer green triangle", c)
	}
	if d := r.Depth(32, 32); d >= math.MaxFloat64 {
		t.Error("depth was not written")
	}
}

func TestDrawTriangleBehindCamera(t *testing.T) {
	r, fb := createTestRasterizer(32, 32)
	tri := solid(math3d.V3(-1, -1, 20), math3d.V3(1, -1, 20), math3d.V3(0, 1, 20), colorful.Color{R: 1})
	r.DrawTriangle(tri)

	if n := countLit(fb); n != 0 {
		t.Errorf("%d pixels drawn for a triangle behind the camera", n)
	}
}

func TestDrawTriangleGouraudInterpolates(t *testing.T) {
	r, fb := createTestRasterizer(100, 100)
	tri := Triangle{V: [3]Vertex{
		{Position: math3d.V3(-4, -4, 0), Color: colorful.Color{R: 1}},
		{Position: math3d.V3(4, -4, 0), Color: colorful.Color{G: 1}},
		{Position: math3d.V3(0, 4, 0), Color: colorful.Color{B: 1}},
	}}
	r.DrawTriangle(tri)

	c := fb.GetPixel(50, 55)
	if c.R == 0 || c.G == 0 || c.B == 0 {
		t.Errorf("interior pixel %v should mix all three vertex colors", c)
	}
}

func TestDrawMeshLit(t *testing.T) {
	r, fb := createTestRasterizer(64, 64)
	quad := &mockMesh{
		pos: []math3d.Vec3{
			math3d.V3(-3, -3, 0), math3d.V3(3, -3, 0), math3d.V3(3, 3, 0), math3d.V3(-3, 3, 0),
		},
		normals: []math3d.Vec3{
			math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1),
		},
		faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}

	lights := Lighting{Hemisphere: NewHemisphereLight(colorful.Color{R: 1, G: 1, B: 1}, colorful.Color{R: 1, G: 1, B: 1}, 0.5)}
	r.DrawMesh(quad, math3d.Identity(), colorful.Color{R: 1, G: 1, B: 1}, lights)

	c := fb.GetPixel(32, 32)
	if c.R < 126 || c.R > 129 || c.R != c.G || c.G != c.B {
		t.Errorf("centre pixel = %v, want mid grey", c)
	}
	if r.TrianglesDrawn != 2 {
		t.Errorf("TrianglesDrawn = %d, want 2", r.TrianglesDrawn)
	}
}

func TestResizeFollowsFramebuffer(t *testing.T) {
	r, fb := createTestRasterizer(10, 10)
	fb.Resize(20, 8)
	r.Resize()
	r.ClearDepth()

	if len(r.zbuffer) != 160 {
		t.Errorf("depth buffer length = %d, want 160", len(r.zbuffer))
	}
}

func BenchmarkDrawMesh(b *testing.B) {
	r, fb := createTestRasterizer(160, 90)
	quad := &mockMesh{
		pos:     []math3d.Vec3{math3d.V3(-3, -3, 0), math3d.V3(3, -3, 0), math3d.V3(3, 3, 0), math3d.V3(-3, 3, 0)},
		normals: []math3d.Vec3{math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1)},
		faces:   [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
	lights := Lighting{Hemisphere: NewHemisphereLight(colorful.Color{R: 1}, colorful.Color{B: 1}, 1)}

	for b.Loop() {
		fb.Clear(ColorWhite)
		r.ClearDepth()
		r.DrawMesh(quad, math3d.Identity(), colorful.Color{R: 1, G: 1, B: 1}, lights)
	}
}
