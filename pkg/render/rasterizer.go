package render

import (
	"math"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/lucasb-eyer/go-colorful"
)

// MeshRenderer is the geometry the rasterizer can draw. It is satisfied by
// models.Mesh without this package importing models.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// Vertex is a vertex in world space with its lit color.
type Vertex struct {
	Position math3d.Vec3
	Color    colorful.Color
}

// Triangle represents a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// Rasterizer draws Gouraud-shaded triangles into a framebuffer with a depth
// buffer.
type Rasterizer struct {
	camera  *Camera
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (row-major, same size as fb)

	// CullBackFaces skips triangles whose counter-clockwise side faces
	// away from the camera.
	CullBackFaces bool

	// Scratch space reused across DrawMesh calls.
	worldPos []math3d.Vec3
	lit      []colorful.Color

	// TrianglesDrawn counts triangles that produced at least a bounding box
	// since the last ClearDepth.
	TrianglesDrawn int
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{camera: camera, fb: fb}
	r.Resize()
	return r
}

// Resize matches the depth buffer to the framebuffer size. Call it after the
// framebuffer was resized.
func (r *Rasterizer) Resize() {
	n := r.fb.Width * r.fb.Height
	if cap(r.zbuffer) >= n {
		r.zbuffer = r.zbuffer[:n]
	} else {
		r.zbuffer = make([]float64, n)
	}
}

// ClearDepth resets the depth buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	r.TrianglesDrawn = 0
	if n == 0 {
		return
	}
	// Copy-doubling is faster than a plain loop for big buffers.
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// Depth returns the stored depth at (x, y), MaxFloat64 where nothing was
// drawn or out of bounds.
func (r *Rasterizer) Depth(x, y int) float64 {
	if x < 0 || x >= r.fb.Width || y < 0 || y >= r.fb.Height {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.fb.Width+x]
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y float64 // Screen coordinates
	Z    float64 // NDC depth
	R    float64
	G    float64
	B    float64
}

// project transforms a world position into screen space. ok is false when
// the point is on or behind the camera plane.
func (r *Rasterizer) project(viewProj math3d.Mat4, p math3d.Vec3) (sv screenVertex, ok bool) {
	clip := viewProj.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return sv, false
	}
	ndc := clip.PerspectiveDivide()
	sv.X = (ndc.X + 1) * 0.5 * float64(r.fb.Width)
	sv.Y = (1 - ndc.Y) * 0.5 * float64(r.fb.Height) // Y flipped
	sv.Z = ndc.Z
	return sv, true
}

// DrawTriangle rasterizes one triangle, interpolating vertex colors.
// Triangles reaching behind the camera are dropped rather than clipped.
func (r *Rasterizer) DrawTriangle(tri Triangle) {
	viewProj := r.camera.ViewProjectionMatrix()

	var sv [3]screenVertex
	for i := range 3 {
		v, ok := r.project(viewProj, tri.V[i].Position)
		if !ok {
			return
		}
		c := tri.V[i].Color
		v.R, v.G, v.B = c.R, c.G, c.B
		sv[i] = v
	}
	r.fill(sv)
}

// edgeCoeffs returns A, B, C for the edge function A*x + B*y + C of the
// directed edge (x0, y0) -> (x1, y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (a, b, c float64) {
	return y0 - y1, x1 - x0, x0*y1 - x1*y0
}

// fill scan-converts a screen-space triangle using incremental edge
// functions. Either winding is accepted; the sign of the area normalizes
// the barycentric weights.
func (r *Rasterizer) fill(sv [3]screenVertex) {
	e1 := math3d.V2(sv[1].X-sv[0].X, sv[1].Y-sv[0].Y)
	e2 := math3d.V2(sv[2].X-sv[0].X, sv[2].Y-sv[0].Y)
	area2 := e1.Cross(e2)
	if area2 == 0 {
		return
	}
	// Screen Y points down, so a counter-clockwise world triangle facing
	// the camera has a negative screen area.
	if r.CullBackFaces && area2 > 0 {
		return
	}

	width, height := r.fb.Width, r.fb.Height
	minX := int(math.Max(0, math.Floor(min(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(width-1), math.Ceil(max(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(height-1), math.Ceil(max(sv[0].Y, sv[1].Y, sv[2].Y))))
	if minX > maxX || minY > maxY {
		return
	}
	r.TrianglesDrawn++

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	a0, b0, c0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	a1, b1, c1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	a2, b2, c2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)
	inv := 1 / area2

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := a0*px + b0*py + c0
	w1Row := a1*px + b1*py + c1
	w2Row := a2*px + b2*py + c2

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		row := y * width

		for x := minX; x <= maxX; x++ {
			l0, l1, l2 := w0*inv, w1*inv, w2*inv
			if l0 >= 0 && l1 >= 0 && l2 >= 0 {
				z := l0*sv[0].Z + l1*sv[1].Z + l2*sv[2].Z
				idx := row + x
				if z < r.zbuffer[idx] {
					r.zbuffer[idx] = z
					r.fb.Pixels[idx] = ToRGBA(colorful.Color{
						R: l0*sv[0].R + l1*sv[1].R + l2*sv[2].R,
						G: l0*sv[0].G + l1*sv[1].G + l2*sv[2].G,
						B: l0*sv[0].B + l1*sv[1].B + l2*sv[2].B,
					})
				}
			}
			w0 += a0
			w1 += a1
			w2 += a2
		}

		w0Row += b0
		w1Row += b1
		w2Row += b2
	}
}

// DrawMesh renders mesh transformed by model with Gouraud shading: every
// vertex is lit once in world space and colors are interpolated across
// faces.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, model math3d.Mat4, material colorful.Color, lights Lighting) {
	n := mesh.VertexCount()
	if cap(r.worldPos) < n {
		r.worldPos = make([]math3d.Vec3, n)
		r.lit = make([]colorful.Color, n)
	}
	r.worldPos, r.lit = r.worldPos[:n], r.lit[:n]

	normalMat := model.NormalMatrix()
	for i := range n {
		p, nrm, _ := mesh.GetVertex(i)
		wp := model.MulVec3(p)
		wn := normalMat.MulVec3Dir(nrm).Normalize()
		r.worldPos[i] = wp
		r.lit[i] = lights.Shade(material, wp, wn)
	}

	for i := range mesh.TriangleCount() {
		f := mesh.GetFace(i)
		r.DrawTriangle(Triangle{V: [3]Vertex{
			{Position: r.worldPos[f[0]], Color: r.lit[f[0]]},
			{Position: r.worldPos[f[1]], Color: r.lit[f[1]]},
			{Position: r.worldPos[f[2]], Color: r.lit[f[2]]},
		}})
	}
}
