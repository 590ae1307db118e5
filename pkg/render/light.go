package render

import (
	"math"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/lucasb-eyer/go-colorful"
)

// HemisphereLight is an ambient light that blends from Ground to Sky as a
// surface normal turns from down to up.
type HemisphereLight struct {
	Sky       colorful.Color
	Ground    colorful.Color
	Intensity float64
}

// NewHemisphereLight creates a hemisphere light.
func NewHemisphereLight(sky, ground colorful.Color, intensity float64) *HemisphereLight {
	return &HemisphereLight{Sky: sky, Ground: ground, Intensity: intensity}
}

// Irradiance returns the light arriving at a surface with the given normal.
func (h *HemisphereLight) Irradiance(normal math3d.Vec3) colorful.Color {
	w := 0.5*normal.Dot(math3d.Up()) + 0.5
	return scaleColor(h.Ground.BlendRgb(h.Sky, w), h.Intensity)
}

// SpotLight emits a cone from Position toward Target. Light fades to zero at
// Distance (0 means unlimited) with the Decay exponent, and across the cone
// edge over the Penumbra fraction of Angle.
type SpotLight struct {
	Position  math3d.Vec3
	Target    math3d.Vec3
	Color     colorful.Color
	Intensity float64
	Distance  float64
	Angle     float64 // Half-angle of the cone in radians
	Penumbra  float64 // 0 = hard edge, 1 = fully soft
	Decay     float64
}

// NewSpotLight creates a spot light aimed at the origin. Its Position starts
// at the origin too, where it lights nothing, so it has to be placed.
func NewSpotLight(c colorful.Color, intensity, distance, angle, penumbra, decay float64) *SpotLight {
	return &SpotLight{
		Color:     c,
		Intensity: intensity,
		Distance:  distance,
		Angle:     angle,
		Penumbra:  penumbra,
		Decay:     decay,
	}
}

// Irradiance returns the diffuse light arriving at pos with the given normal.
func (s *SpotLight) Irradiance(pos, normal math3d.Vec3) colorful.Color {
	toLight := s.Position.Sub(pos)
	d := toLight.Len()
	if d == 0 {
		return colorful.Color{}
	}
	l := toLight.Scale(1 / d)

	ndl := normal.Dot(l)
	if ndl <= 0 {
		return colorful.Color{}
	}

	axis := s.Position.Sub(s.Target).Normalize()
	cone := math3d.Smoothstep(math.Cos(s.Angle), math.Cos(s.Angle*(1-s.Penumbra)), l.Dot(axis))
	if cone == 0 {
		return colorful.Color{}
	}

	return scaleColor(s.Color, s.Intensity*cone*s.attenuation(d)*ndl)
}

func (s *SpotLight) attenuation(d float64) float64 {
	if s.Distance <= 0 || s.Decay <= 0 {
		return 1
	}
	return math.Pow(math3d.Saturate(1-d/s.Distance), s.Decay)
}

// Lighting is the set of lights a mesh is shaded with.
type Lighting struct {
	Hemisphere *HemisphereLight
	Spots      []*SpotLight
}

// Shade returns the lit color of a diffuse surface of color base.
func (l Lighting) Shade(base colorful.Color, pos, normal math3d.Vec3) colorful.Color {
	var total colorful.Color
	if l.Hemisphere != nil {
		total = addColor(total, l.Hemisphere.Irradiance(normal))
	}
	for _, s := range l.Spots {
		total = addColor(total, s.Irradiance(pos, normal))
	}
	return colorful.Color{R: base.R * total.R, G: base.G * total.G, B: base.B * total.B}
}

func scaleColor(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

func addColor(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}
