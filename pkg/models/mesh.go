package models

import "sort"

// Mesh is a draw range: a contiguous run of triangles sharing one material.
type Mesh struct {
	StartIndex    int // offset into the index buffer (triangle * 3)
	TriangleCount int
	Material      int // index into the Model's material table
}

// IndexCount returns the number of indices the mesh covers.
func (m Mesh) IndexCount() int {
	return m.TriangleCount * 3
}

// buildMeshes splits the per-triangle material ids into maximal contiguous
// runs, one Mesh each, then orders them by descending material alpha so
// opaque geometry is drawn before blended geometry. Runs of the same
// material that are not adjacent stay separate meshes. Equal-alpha meshes
// keep file order, but callers should not rely on it.
func buildMeshes(attributes []int, materials []Material) []Mesh {
	var meshes []Mesh
	for i, mat := range attributes {
		if n := len(meshes); n > 0 && meshes[n-1].Material == mat {
			meshes[n-1].TriangleCount++
			continue
		}
		meshes = append(meshes, Mesh{
			StartIndex:    i * 3,
			TriangleCount: 1,
			Material:      mat,
		})
	}

	sort.SliceStable(meshes, func(i, j int) bool {
		return materials[meshes[i].Material].Alpha > materials[meshes[j].Material].Alpha
	})
	return meshes
}
