// Package scene builds the gradient-follow scene: a camera, a cylinder lying
// along X and three lights, all sized from the viewport.
package scene

import (
	"math"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/additionsdigital/gradientfollow/pkg/models"
	"github.com/additionsdigital/gradientfollow/pkg/render"
	"github.com/lucasb-eyer/go-colorful"
)

// Scene constants.
const (
	FOV            = math.Pi / 4 // 45 degrees vertical
	Near           = 1.0
	Far            = 10000.0
	RadialSegments = 32

	SkyHex    = 0x00ffe1
	GroundHex = 0xff4e18

	HemisphereIntensity = 1.0
	SpotIntensity       = 0.5
	SpotAngle           = 1.0
	SpotPenumbra        = 1.0
	SpotDecay           = 1.0
)

// Options tunes a build.
type Options struct {
	Background     render.Color
	RadialSegments int
}

// DefaultOptions returns a white background and 32 segments.
func DefaultOptions() Options {
	return Options{Background: render.ColorWhite, RadialSegments: RadialSegments}
}

// Scene is everything that gets drawn in a frame.
type Scene struct {
	Viewport   Viewport
	Bucket     int // Aspect bucket at build time
	Background render.Color

	Camera *render.Camera

	Mesh          *models.Mesh
	MeshRotationZ float64
	MeshScaleX    float64
	Material      colorful.Color

	Hemisphere  *render.HemisphereLight
	SkyLight    *render.SpotLight
	GroundLight *render.SpotLight
}

// Build creates a scene for vp. The camera sits at z = height looking at the
// origin, and the cylinder has radius height/2 and length width.
func Build(vp Viewport, opts Options) *Scene {
	if opts.RadialSegments <= 0 {
		opts.RadialSegments = RadialSegments
	}

	cam := render.NewCamera(FOV, vp.Aspect(), Near, Far)
	cam.SetPosition(math3d.V3(0, 0, vp.Height))

	radius := vp.Height / 2
	mesh := models.NewCylinder(radius, radius, vp.Width, opts.RadialSegments)
	mesh.CalculateBounds()

	spotDistance := vp.Height / 3
	return &Scene{
		Viewport:      vp,
		Bucket:        vp.Bucket(),
		Background:    opts.Background,
		Camera:        cam,
		Mesh:          mesh,
		MeshRotationZ: math.Pi / 2,
		MeshScaleX:    1,
		Material:      colorful.Color{R: 1, G: 1, B: 1},
		Hemisphere:    render.NewHemisphereLight(render.HexColor(SkyHex), render.HexColor(GroundHex), HemisphereIntensity),
		SkyLight:      render.NewSpotLight(render.HexColor(SkyHex), SpotIntensity, spotDistance, SpotAngle, SpotPenumbra, SpotDecay),
		GroundLight:   render.NewSpotLight(render.HexColor(SkyHex), SpotIntensity, spotDistance, SpotAngle, SpotPenumbra, SpotDecay),
	}
}

// Resize applies a viewport of the same bucket without rebuilding: only the
// camera aspect changes.
func (s *Scene) Resize(vp Viewport) {
	s.Viewport = vp
	s.Camera.SetAspectRatio(vp.Aspect())
}

// ModelMatrix returns the mesh transform. The X scale is applied in mesh
// space, before the quarter turn, so it stretches the cylinder's radius
// along world Y.
func (s *Scene) ModelMatrix() math3d.Mat4 {
	return math3d.RotateZ(s.MeshRotationZ).Mul(math3d.Scale(math3d.V3(s.MeshScaleX, 1, 1)))
}

// Lighting returns the lights in shading order.
func (s *Scene) Lighting() render.Lighting {
	return render.Lighting{
		Hemisphere: s.Hemisphere,
		Spots:      []*render.SpotLight{s.SkyLight, s.GroundLight},
	}
}

// Render clears fb and draws the mesh.
func (s *Scene) Render(r *render.Rasterizer, fb *render.Framebuffer) {
	fb.Clear(s.Background)
	r.ClearDepth()
	r.DrawMesh(s.Mesh, s.ModelMatrix(), s.Material, s.Lighting())
}
