package follow

import (
	"math"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/additionsdigital/gradientfollow/pkg/render"
	"github.com/additionsdigital/gradientfollow/pkg/scene"
)

// Params are the scene values driven either by direct mapping or by a
// transition.
type Params struct {
	Roll   float64 // Camera roll in radians
	ScaleX float64 // Mesh X scale
	Sky    render.HSL
	Ground render.HSL
}

// Direct maps the input onto scene values. aspect is the current viewport
// width / height.
func Direct(in InputVector, aspect float64) Params {
	s := in.Split()
	return Params{
		Roll:   math.Pi / 14 * -s,
		ScaleX: 1 + aspect/10*math.Abs(s),
		Sky:    render.HSL{H: skyHue(in), S: 0.9, L: 0.5},
		Ground: render.HSL{H: groundHue(in), S: 0.9, L: 0.5},
	}
}

func skyHue(in InputVector) float64    { return in.X/14 + 0.01 }
func groundHue(in InputVector) float64 { return in.Y/10 + 0.55 }

// Capture reads the current values back from s.
func Capture(s *scene.Scene) Params {
	return Params{
		Roll:   s.Camera.Roll,
		ScaleX: s.MeshScaleX,
		Sky:    render.HSLOf(s.Hemisphere.Sky),
		Ground: render.HSLOf(s.Hemisphere.Ground),
	}
}

// Apply writes p into s.
func (p Params) Apply(s *scene.Scene) {
	s.Camera.SetRoll(p.Roll)
	s.MeshScaleX = p.ScaleX
	s.Hemisphere.Sky = p.Sky.Color()
	s.Hemisphere.Ground = p.Ground.Color()
}

// LightParams place and color the two pointer spotlights.
type LightParams struct {
	Position        math3d.Vec3
	SkyColor        render.HSL
	GroundColor     render.HSL
	SkyIntensity    float64
	GroundIntensity float64
}

// MouseLights maps the input onto the spotlights. Both lights share one
// position in front of the mesh; the lower the input, the more the ground
// light takes over from the sky light.
func MouseLights(in InputVector, vp scene.Viewport) LightParams {
	sx := in.Split()
	sy := -in.Y*2 + 1
	return LightParams{
		Position:        math3d.V3(sx*vp.Width/4, sy*vp.Height/4, vp.Height/3*2),
		SkyColor:        render.HSL{H: skyHue(in), S: 0.8, L: 0.5},
		GroundColor:     render.HSL{H: groundHue(in), S: 0.8, L: 0.5},
		SkyIntensity:    -(in.Y/10 - 1.0/10),
		GroundIntensity: in.Y / 10,
	}
}

// Apply writes l into the spotlights of s.
func (l LightParams) Apply(s *scene.Scene) {
	s.SkyLight.Position = l.Position
	s.SkyLight.Color = l.SkyColor.Color()
	s.SkyLight.Intensity = l.SkyIntensity

	s.GroundLight.Position = l.Position
	s.GroundLight.Color = l.GroundColor.Color()
	s.GroundLight.Intensity = l.GroundIntensity
}
