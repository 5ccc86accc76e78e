package models

// vertexWelder deduplicates face corners while the vertex buffer is built.
//
// Buckets are keyed by the source position index, not by a content hash: each
// bucket lists the vertex buffer entries already emitted for that position.
// Candidates are compared bit for bit with no epsilon. Corners that share a
// position but differ in texture coordinate or normal (UV seams, hard edges)
// must stay separate vertices.
type vertexWelder struct {
	vertices []Vertex
	buckets  map[int][]int
}

// newVertexWelder creates a welder whose vertex buffer can hold capacity
// vertices without reallocating.
func newVertexWelder(capacity int) *vertexWelder {
	return &vertexWelder{
		vertices: make([]Vertex, 0, capacity),
		buckets:  make(map[int][]int),
	}
}

// weld returns the vertex buffer index for candidate, appending it unless a
// bit-identical vertex was already emitted for the same source position.
func (w *vertexWelder) weld(source int, candidate Vertex) int {
	bucket := w.buckets[source]
	for _, idx := range bucket {
		if w.vertices[idx].sameAttributes(candidate) {
			return idx
		}
	}

	idx := len(w.vertices)
	w.vertices = append(w.vertices, candidate)
	w.buckets[source] = append(bucket, idx)
	return idx
}
