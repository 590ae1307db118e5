package models

import (
	"math"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
)

// NewCylinder builds a closed cylinder centred on the origin with its axis
// along Y. The side is split into radialSegments columns with a duplicated
// seam vertex so UVs wrap cleanly, and each cap gets its own centre vertex
// per segment.
//
// For n segments the mesh has 4n+4 side and cap vertices plus 2n cap
// centres, and 4n triangles.
func NewCylinder(radiusTop, radiusBottom, height float64, radialSegments int) *Mesh {
	radialSegments = max(radialSegments, 3)
	m := NewMesh("cylinder")
	half := height / 2
	slope := 0.0
	if height != 0 {
		slope = (radiusBottom - radiusTop) / height
	}

	// Side: two rings, top (row 0) then bottom (row 1).
	ring := func(row int) int { return row * (radialSegments + 1) }
	for row := range 2 {
		v := float64(row)
		radius := v*(radiusBottom-radiusTop) + radiusTop
		y := half - v*height

		for x := 0; x <= radialSegments; x++ {
			u := float64(x) / float64(radialSegments)
			sin, cos := math.Sincos(u * 2 * math.Pi)
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: math3d.V3(radius*sin, y, radius*cos),
				Normal:   math3d.V3(sin, slope, cos).Normalize(),
				UV:       math3d.V2(u, 1-v),
			})
		}
	}
	for x := range radialSegments {
		a := ring(0) + x
		b := ring(1) + x
		c := ring(1) + x + 1
		d := ring(0) + x + 1
		m.Faces = append(m.Faces, Face{V: [3]int{a, b, d}}, Face{V: [3]int{b, c, d}})
	}

	m.addCap(radiusTop, half, radialSegments, true)
	m.addCap(radiusBottom, -half, radialSegments, false)
	m.CalculateBounds()
	return m
}

func (m *Mesh) addCap(radius, y float64, segments int, top bool) {
	sign := 1.0
	if !top {
		sign = -1
	}
	normal := math3d.V3(0, sign, 0)

	centres := len(m.Vertices)
	for x := range segments {
		u := (float64(x) + 0.5) / float64(segments)
		m.Vertices = append(m.Vertices, MeshVertex{
			Position: math3d.V3(0, y, 0),
			Normal:   normal,
			UV:       math3d.V2(u, 0.5),
		})
	}

	rim := len(m.Vertices)
	for x := 0; x <= segments; x++ {
		u := float64(x) / float64(segments)
		sin, cos := math.Sincos(u * 2 * math.Pi)
		m.Vertices = append(m.Vertices, MeshVertex{
			Position: math3d.V3(radius*sin, y, radius*cos),
			Normal:   normal,
			UV:       math3d.V2(cos*0.5+0.5, sin*0.5*sign+0.5),
		})
	}

	for x := range segments {
		c := centres + x
		i := rim + x
		if top {
			m.Faces = append(m.Faces, Face{V: [3]int{i, i + 1, c}})
		} else {
			m.Faces = append(m.Faces, Face{V: [3]int{i + 1, i, c}})
		}
	}
}
