package models

import (
	"fmt"
	"math"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// NodeTransform places an exported mesh in the glTF scene.
type NodeTransform struct {
	RotationZ float64     // Radians around Z
	Scale     math3d.Vec3 // Zero value means (1, 1, 1)
}

// GLTFExporter writes meshes as glTF documents.
type GLTFExporter struct {
	// BaseColor is the RGBA factor of the exported PBR material.
	BaseColor [4]float64
}

// NewGLTFExporter creates an exporter with a white material.
func NewGLTFExporter() *GLTFExporter {
	return &GLTFExporter{BaseColor: [4]float64{1, 1, 1, 1}}
}

// Document builds a single-node glTF document for mesh.
func (e *GLTFExporter) Document(mesh *Mesh, t NodeTransform) (*gltf.Document, error) {
	if mesh.VertexCount() == 0 || mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("export %q: mesh is empty", mesh.Name)
	}

	positions := make([][3]float32, mesh.VertexCount())
	normals := make([][3]float32, mesh.VertexCount())
	for i, v := range mesh.Vertices {
		positions[i] = vec3f(v.Position)
		normals[i] = vec3f(v.Normal)
	}

	indices := make([]uint32, 0, mesh.TriangleCount()*3)
	for _, f := range mesh.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= mesh.VertexCount() {
				return nil, fmt.Errorf("export %q: face index %d out of range", mesh.Name, idx)
			}
			indices = append(indices, uint32(idx))
		}
	}

	doc := gltf.NewDocument()
	baseColor := e.BaseColor
	doc.Materials = []*gltf.Material{{
		Name: "surface",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &baseColor,
		},
	}}

	doc.Meshes = []*gltf.Mesh{{
		Name: mesh.Name,
		Primitives: []*gltf.Primitive{{
			Mode:    gltf.PrimitiveTriangles,
			Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			},
			Material: gltf.Index(0),
		}},
	}}

	scale := t.Scale
	if scale == (math3d.Vec3{}) {
		scale = math3d.V3(1, 1, 1)
	}
	// Quaternion for a rotation of RotationZ around +Z.
	s, c := math.Sincos(t.RotationZ / 2)
	doc.Nodes = []*gltf.Node{{
		Name:     mesh.Name,
		Mesh:     gltf.Index(0),
		Rotation: [4]float64{0, 0, s, c},
		Scale:    [3]float64{scale.X, scale.Y, scale.Z},
	}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return doc, nil
}

// SaveGLB writes mesh to path as binary glTF.
func (e *GLTFExporter) SaveGLB(path string, mesh *Mesh, t NodeTransform) error {
	doc, err := e.Document(mesh, t)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

func vec3f(v math3d.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
