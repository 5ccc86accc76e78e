// Package models imports Wavefront OBJ geometry and MTL material libraries
// into renderer-ready buffers: a welded vertex buffer, a triangle index
// buffer, a material table and material-grouped draw ranges.
package models

import (
	"path/filepath"
	"strings"

	"github.com/taigrr/objmesh/pkg/math3d"
)

// VertexStride is the byte stride of one vertex in InterleavedVertices:
// position3, texcoord2, normal3, tangent4, bitangent3 as float32.
const VertexStride = vertexFloats * 4

const vertexFloats = 3 + 2 + 3 + 4 + 3

// Vertex holds all vertex attributes.
type Vertex struct {
	Position  math3d.Vec3
	TexCoord  math3d.Vec2
	Normal    math3d.Vec3
	Tangent   math3d.Vec4 // W holds the handedness, +1 or -1
	Bitangent math3d.Vec3
}

// sameAttributes reports whether v and o carry bit-identical position,
// texture coordinate and normal.
func (v Vertex) sameAttributes(o Vertex) bool {
	return v.Position.BitsEqual(o.Position) &&
		v.TexCoord.BitsEqual(o.TexCoord) &&
		v.Normal.BitsEqual(o.Normal)
}

// Model is an imported OBJ model.
//
// The material table is frozen once the model is built: meshes refer to
// materials by index, so the table is never appended to, removed from or
// reordered for the lifetime of the model. Accessors hand out copies.
type Model struct {
	vertices   []Vertex
	indices    []uint32
	attributes []int // material index per triangle

	materials     []Material
	materialIndex map[string]int
	meshes        []Mesh

	bounds Bounds
	name   string
	path   string

	hasPositions     bool
	hasTextureCoords bool
	hasNormals       bool
	hasTangents      bool
}

// Unload releases all buffers and resets the model to its empty state.
func (m *Model) Unload() {
	*m = Model{}
}

// Name returns the file name of the imported model without its extension.
func (m *Model) Name() string {
	return m.name
}

// Path returns the directory the model was imported from.
func (m *Model) Path() string {
	return m.path
}

// NumberOfVertices returns the size of the vertex buffer.
func (m *Model) NumberOfVertices() int {
	return len(m.vertices)
}

// NumberOfIndices returns the size of the index buffer.
func (m *Model) NumberOfIndices() int {
	return len(m.indices)
}

// NumberOfTriangles returns the number of triangles.
func (m *Model) NumberOfTriangles() int {
	return len(m.attributes)
}

// NumberOfMaterials returns the size of the material table.
func (m *Model) NumberOfMaterials() int {
	return len(m.materials)
}

// NumberOfMeshes returns the number of draw ranges.
func (m *Model) NumberOfMeshes() int {
	return len(m.meshes)
}

// Vertex returns vertex i.
func (m *Model) Vertex(i int) Vertex {
	return m.vertices[i]
}

// Vertices returns a copy of the vertex buffer.
func (m *Model) Vertices() []Vertex {
	out := make([]Vertex, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Indices returns a copy of the triangle index buffer.
func (m *Model) Indices() []uint32 {
	out := make([]uint32, len(m.indices))
	copy(out, m.indices)
	return out
}

// Attributes returns a copy of the per-triangle material index buffer.
func (m *Model) Attributes() []int {
	out := make([]int, len(m.attributes))
	copy(out, m.attributes)
	return out
}

// Material returns material i.
func (m *Model) Material(i int) Material {
	return m.materials[i]
}

// Materials returns a copy of the material table.
func (m *Model) Materials() []Material {
	out := make([]Material, len(m.materials))
	copy(out, m.materials)
	return out
}

// MaterialIndex looks up a material by name.
func (m *Model) MaterialIndex(name string) (int, bool) {
	i, ok := m.materialIndex[name]
	return i, ok
}

// Mesh returns draw range i.
func (m *Model) Mesh(i int) Mesh {
	return m.meshes[i]
}

// Meshes returns a copy of the draw ranges, most opaque first.
func (m *Model) Meshes() []Mesh {
	out := make([]Mesh, len(m.meshes))
	copy(out, m.meshes)
	return out
}

// HasPositions reports whether the source declared any vertex positions.
func (m *Model) HasPositions() bool {
	return m.hasPositions
}

// HasTextureCoords reports whether the source declared texture coordinates.
func (m *Model) HasTextureCoords() bool {
	return m.hasTextureCoords
}

// HasNormals reports whether every vertex carries a normal, either from the
// source or generated.
func (m *Model) HasNormals() bool {
	return m.hasNormals
}

// HasTangents reports whether tangents and bitangents were generated.
func (m *Model) HasTangents() bool {
	return m.hasTangents
}

// InterleavedVertices flattens the vertex buffer into float32s laid out as
// position3, texcoord2, normal3, tangent4, bitangent3 (see VertexStride).
func (m *Model) InterleavedVertices() []float32 {
	out := make([]float32, 0, len(m.vertices)*vertexFloats)
	for _, v := range m.vertices {
		out = append(out,
			float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z),
			float32(v.TexCoord.X), float32(v.TexCoord.Y),
			float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z),
			float32(v.Tangent.X), float32(v.Tangent.Y), float32(v.Tangent.Z), float32(v.Tangent.W),
			float32(v.Bitangent.X), float32(v.Bitangent.Y), float32(v.Bitangent.Z),
		)
	}
	return out
}

// TexturePaths returns the locations worth trying for a texture referenced
// by a material: the path as written, then the model directory joined with
// its base name. Nothing is checked on disk.
func (m *Model) TexturePaths(name string) []string {
	if name == "" {
		return nil
	}
	base := name
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	paths := []string{name}
	if local := filepath.Join(m.path, base); local != name {
		paths = append(paths, local)
	}
	return paths
}
