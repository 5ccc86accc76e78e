package models

import "github.com/taigrr/objmesh/pkg/math3d"

// generateNormals computes smooth per-vertex normals. Each triangle adds its
// unnormalized face normal (edge1 × edge2 from vertex 0) to its three
// vertices, so larger faces weigh more; the sums are normalized at the end.
func generateNormals(vertices []Vertex, indices []uint32) {
	// Reset all normals
	for i := range vertices {
		vertices[i].Normal = math3d.Zero3()
	}

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		v0 := vertices[i0].Position
		v1 := vertices[i1].Position
		v2 := vertices[i2].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2) // Don't normalize yet

		vertices[i0].Normal = vertices[i0].Normal.Add(normal)
		vertices[i1].Normal = vertices[i1].Normal.Add(normal)
		vertices[i2].Normal = vertices[i2].Normal.Add(normal)
	}

	for i := range vertices {
		vertices[i].Normal = vertices[i].Normal.Normalize()
	}
}
