package models

import (
	"math"

	"github.com/taigrr/objmesh/pkg/math3d"
)

// degenerateUVEpsilon is the smallest |det| of the texture-coordinate edge
// matrix treated as a valid UV mapping.
const degenerateUVEpsilon = 1e-6

// generateTangents builds a per-vertex tangent basis from positions and
// texture coordinates. Normals need not be unit length.
//
// Per triangle, the position edges are expressed in terms of the UV edges by
// solving a 2x2 system; triangles with a degenerate UV mapping contribute
// tangent (1,0,0) and bitangent (0,1,0). Per vertex, the summed tangent is
// Gram-Schmidt orthogonalized against the normal and the bitangent is rebuilt
// as normal × tangent. Tangent.W is -1 when that bitangent agrees with the
// summed UV bitangent and +1 when it opposes it, so a renderer recovers the
// UV bitangent as -W * (normal × tangent).
func generateTangents(vertices []Vertex, indices []uint32) {
	sumTangent := make([]math3d.Vec3, len(vertices))
	sumBitangent := make([]math3d.Vec3, len(vertices))

	for t := 0; t+2 < len(indices); t += 3 {
		tri := [3]uint32{indices[t], indices[t+1], indices[t+2]}
		v0, v1, v2 := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]

		edge1 := v1.Position.Sub(v0.Position)
		edge2 := v2.Position.Sub(v0.Position)
		tex1 := v1.TexCoord.Sub(v0.TexCoord)
		tex2 := v2.TexCoord.Sub(v0.TexCoord)

		tangent := math3d.V3(1, 0, 0)
		bitangent := math3d.V3(0, 1, 0)

		det := tex1.Cross(tex2)
		if math.Abs(det) >= degenerateUVEpsilon {
			inv := 1 / det
			tangent = edge1.Scale(tex2.Y).Sub(edge2.Scale(tex1.Y)).Scale(inv)
			bitangent = edge2.Scale(tex1.X).Sub(edge1.Scale(tex2.X)).Scale(inv)
		}

		for _, idx := range tri {
			sumTangent[idx] = sumTangent[idx].Add(tangent)
			sumBitangent[idx] = sumBitangent[idx].Add(bitangent)
		}
	}

	for i := range vertices {
		// File normals are kept as read and may not be unit length.
		n := vertices[i].Normal.Normalize()
		tangent := sumTangent[i].Sub(n.Scale(n.Dot(sumTangent[i]))).Normalize()
		if tangent.LenSq() == 0 {
			tangent = perpendicular(n)
		}

		bitangent := n.Cross(tangent)
		handedness := -1.0
		if bitangent.Dot(sumBitangent[i]) < 0 {
			handedness = 1
		}

		vertices[i].Tangent = math3d.V4FromV3(tangent, handedness)
		vertices[i].Bitangent = bitangent
	}
}

// perpendicular returns a unit vector orthogonal to n, built from the axis n
// is least aligned with. A zero n yields (1,0,0).
func perpendicular(n math3d.Vec3) math3d.Vec3 {
	if n.LenSq() == 0 {
		return math3d.V3(1, 0, 0)
	}
	axis := math3d.V3(1, 0, 0)
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ay <= ax && ay <= az:
		axis = math3d.V3(0, 1, 0)
	case az <= ax && az <= ay:
		axis = math3d.V3(0, 0, 1)
	}
	return axis.Sub(n.Scale(n.Dot(axis))).Normalize()
}
