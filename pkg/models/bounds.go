package models

import (
	"math"

	"github.com/taigrr/objmesh/pkg/math3d"
)

// Bounds is the axis-aligned bounding box of a model.
type Bounds struct {
	Min    math3d.Vec3
	Max    math3d.Vec3
	Center math3d.Vec3

	Width  float64 // X extent
	Height float64 // Y extent
	Length float64 // Z extent

	// Radius is the largest of Width, Height and Length. It is an extent
	// proxy, not the radius of a bounding sphere.
	Radius float64
}

// Size returns the dimensions of the bounding box.
func (b Bounds) Size() math3d.Vec3 {
	return math3d.V3(b.Width, b.Height, b.Length)
}

// computeBounds scans the vertex positions once. An empty buffer yields
// zero bounds.
func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}

	lo := vertices[0].Position
	hi := vertices[0].Position
	for _, v := range vertices[1:] {
		lo = lo.Min(v.Position)
		hi = hi.Max(v.Position)
	}

	size := hi.Sub(lo)
	return Bounds{
		Min:    lo,
		Max:    hi,
		Center: lo.Add(hi).Scale(0.5),
		Width:  size.X,
		Height: size.Y,
		Length: size.Z,
		Radius: math.Max(math.Max(size.X, size.Y), size.Z),
	}
}

// Bounds returns the current bounding box.
func (m *Model) Bounds() Bounds {
	return m.bounds
}

// Center returns the center of the bounding box.
func (m *Model) Center() math3d.Vec3 {
	return m.bounds.Center
}

// Width returns the X extent.
func (m *Model) Width() float64 {
	return m.bounds.Width
}

// Height returns the Y extent.
func (m *Model) Height() float64 {
	return m.bounds.Height
}

// Length returns the Z extent.
func (m *Model) Length() float64 {
	return m.bounds.Length
}

// Radius returns the largest extent.
func (m *Model) Radius() float64 {
	return m.bounds.Radius
}

// Normalize rescales the model so its radius becomes radius, optionally
// moving the bounding box center to the origin first. Bounds are
// recomputed afterwards. A model with zero radius is left unchanged.
func (m *Model) Normalize(radius float64, center bool) {
	b := computeBounds(m.vertices)
	if b.Radius == 0 {
		return
	}

	offset := math3d.Zero3()
	if center {
		offset = b.Center.Negate()
	}
	mat := math3d.ScaleUniform(radius / b.Radius).Mul(math3d.Translate(offset))

	for i := range m.vertices {
		m.vertices[i].Position = mat.MulVec3(m.vertices[i].Position)
	}
	m.bounds = computeBounds(m.vertices)
}

// Transform applies mat to all positions and tangents, and its normal matrix
// to normals. Bitangents are rebuilt as normal × tangent. A mirroring mat
// (negative determinant) flips tangent handedness.
func (m *Model) Transform(mat math3d.Mat4) {
	normalMat := mat.NormalMatrix()
	mirrored := mat.Determinant() < 0
	for i := range m.vertices {
		v := &m.vertices[i]
		v.Position = mat.MulVec3(v.Position)
		v.Normal = normalMat.MulVec3Dir(v.Normal).Normalize()
		if m.hasTangents {
			t := mat.MulVec3Dir(v.Tangent.Vec3()).Normalize()
			w := v.Tangent.W
			if mirrored {
				w = -w
			}
			v.Tangent = math3d.V4FromV3(t, w)
			v.Bitangent = v.Normal.Cross(t)
		}
	}
	m.bounds = computeBounds(m.vertices)
}

// ReverseWinding flips every triangle's orientation and negates normals and
// tangent directions to match.
func (m *Model) ReverseWinding() {
	for t := 0; t+2 < len(m.indices); t += 3 {
		m.indices[t+1], m.indices[t+2] = m.indices[t+2], m.indices[t+1]
	}
	for i := range m.vertices {
		v := &m.vertices[i]
		v.Normal = v.Normal.Negate()
		v.Tangent = math3d.V4FromV3(v.Tangent.Vec3().Negate(), v.Tangent.W)
	}
}
