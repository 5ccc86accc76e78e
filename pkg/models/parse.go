package models

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taigrr/objmesh/pkg/math3d"
)

// faceForm is the index-record layout of a face corner.
type faceForm int

const (
	formPosition               faceForm = iota // v
	formPositionTexCoord                       // v/vt
	formPositionNormal                         // v//vn
	formPositionTexCoordNormal                 // v/vt/vn
)

func (f faceForm) hasTexCoord() bool {
	return f == formPositionTexCoord || f == formPositionTexCoordNormal
}

func (f faceForm) hasNormal() bool {
	return f == formPositionNormal || f == formPositionTexCoordNormal
}

// faceCorner holds the indices of one face corner. Before resolution they are
// raw OBJ references; after, 0-based indices (-1 when the form lacks them).
type faceCorner struct {
	v, vt, vn int
}

// elementCounts tracks how many positions, texture coordinates and normals
// have been parsed so far.
type elementCounts struct {
	positions int
	texCoords int
	normals   int
}

// parseCorner parses one face token ("1", "1/2", "1//3" or "1/2/3").
func parseCorner(token string) (faceCorner, faceForm, bool) {
	parts := strings.Split(token, "/")
	c := faceCorner{vt: -1, vn: -1}
	var err error

	switch len(parts) {
	case 1:
		if c.v, err = strconv.Atoi(parts[0]); err != nil {
			return c, 0, false
		}
		return c, formPosition, true

	case 2:
		if c.v, err = strconv.Atoi(parts[0]); err != nil {
			return c, 0, false
		}
		if c.vt, err = strconv.Atoi(parts[1]); err != nil {
			return c, 0, false
		}
		return c, formPositionTexCoord, true

	case 3:
		if c.v, err = strconv.Atoi(parts[0]); err != nil {
			return c, 0, false
		}
		if c.vn, err = strconv.Atoi(parts[2]); err != nil {
			return c, 0, false
		}
		if parts[1] == "" {
			return c, formPositionNormal, true
		}
		if c.vt, err = strconv.Atoi(parts[1]); err != nil {
			return c, 0, false
		}
		return c, formPositionTexCoordNormal, true
	}

	return c, 0, false
}

// resolveIndex converts an OBJ reference into a 0-based index. Positive
// references are 1-based; negative ones are relative to the count parsed so
// far (-1 is the last element). Zero and out-of-range references fail.
func resolveIndex(ref, count int) (int, bool) {
	var idx int
	switch {
	case ref > 0:
		idx = ref - 1
	case ref < 0:
		idx = count + ref
	default:
		return 0, false
	}
	if idx < 0 || idx >= count {
		return 0, false
	}
	return idx, true
}

// resolveFace parses and resolves the corners of an "f" line. The form is
// set by the first token. Tokens in another form, or whose references do
// not resolve against counts, are dropped. Both passes use this, so the
// triangle count of pass 1 always matches what pass 2 emits.
func resolveFace(fields []string, counts elementCounts) ([]faceCorner, faceForm) {
	if len(fields) == 0 {
		return nil, formPosition
	}
	_, form, ok := parseCorner(fields[0])
	if !ok {
		return nil, formPosition
	}

	corners := make([]faceCorner, 0, len(fields))
	for _, token := range fields {
		raw, f, ok := parseCorner(token)
		if !ok || f != form {
			continue
		}

		var c faceCorner
		if c.v, ok = resolveIndex(raw.v, counts.positions); !ok {
			continue
		}
		c.vt, c.vn = -1, -1
		if form.hasTexCoord() {
			if c.vt, ok = resolveIndex(raw.vt, counts.texCoords); !ok {
				continue
			}
		}
		if form.hasNormal() {
			if c.vn, ok = resolveIndex(raw.vn, counts.normals); !ok {
				continue
			}
		}
		corners = append(corners, c)
	}
	return corners, form
}

// fanTriangles returns the number of triangles a fan over k corners yields.
func fanTriangles(k int) int {
	if k < 3 {
		return 0
	}
	return k - 2
}

// geometryCounts is the result of the sizing pass.
type geometryCounts struct {
	elementCounts
	triangles int
	skipped   int // lines with an unrecognized directive
}

// scanGeometry is pass 1: it counts positions, texture coordinates, normals
// and fan triangles, and hands every "mtllib" file name to loadLib.
func scanGeometry(r io.Reader, loadLib func(name string) error) (geometryCounts, error) {
	var counts geometryCounts
	tok := newTokenizer(r)

	for {
		keyword, fields, ok := tok.next()
		if !ok {
			break
		}

		switch parseDirective(keyword) {
		case directiveVertex:
			counts.positions++
		case directiveTexCoord:
			counts.texCoords++
		case directiveNormal:
			counts.normals++
		case directiveFace:
			corners, _ := resolveFace(fields, counts.elementCounts)
			counts.triangles += fanTriangles(len(corners))
		case directiveMaterialLib:
			for _, name := range fields {
				if err := loadLib(name); err != nil {
					return counts, err
				}
			}
		case directiveUseMaterial:
		default:
			counts.skipped++
		}
	}
	if err := tok.Err(); err != nil {
		return counts, fmt.Errorf("read geometry: %w", err)
	}
	return counts, nil
}

// geometry is the result of the emission pass.
type geometry struct {
	vertices   []Vertex
	indices    []uint32
	attributes []int

	// normalsComplete is true when normals were declared and every emitted
	// triangle referenced them.
	normalsComplete  bool
	unknownMaterials []string
}

// emitGeometry is pass 2: it re-reads the stream, resolves face corners,
// fan-triangulates, welds vertices, and writes indices and per-triangle
// material ids into buffers sized from counts.
func emitGeometry(r io.Reader, counts geometryCounts, lib *MaterialLibrary) (*geometry, error) {
	positions := make([]math3d.Vec3, 0, counts.positions)
	texCoords := make([]math3d.Vec2, 0, counts.texCoords)
	normals := make([]math3d.Vec3, 0, counts.normals)

	g := &geometry{
		indices:         make([]uint32, counts.triangles*3),
		attributes:      make([]int, counts.triangles),
		normalsComplete: counts.normals > 0,
	}
	welder := newVertexWelder(counts.triangles * 3)
	seenUnknown := make(map[string]bool)

	active := 0
	triangle := 0
	tok := newTokenizer(r)

	for {
		keyword, fields, ok := tok.next()
		if !ok {
			break
		}

		switch parseDirective(keyword) {
		case directiveVertex:
			p := parseFloats(fields, 3)
			positions = append(positions, math3d.V3(p[0], p[1], p[2]))

		case directiveTexCoord:
			t := parseFloats(fields, 2)
			texCoords = append(texCoords, math3d.V2(t[0], t[1]))

		case directiveNormal:
			n := parseFloats(fields, 3)
			normals = append(normals, math3d.V3(n[0], n[1], n[2]))

		case directiveUseMaterial:
			name := strings.Join(fields, " ")
			idx, found := lib.Lookup(name)
			if !found {
				idx = 0
				if !seenUnknown[name] {
					seenUnknown[name] = true
					g.unknownMaterials = append(g.unknownMaterials, name)
				}
			}
			active = idx

		case directiveFace:
			counted := elementCounts{len(positions), len(texCoords), len(normals)}
			corners, form := resolveFace(fields, counted)
			n := fanTriangles(len(corners))
			if n == 0 {
				continue
			}
			if triangle+n > counts.triangles {
				return nil, fmt.Errorf("line %d: face emits more triangles than counted (%d)", tok.line, counts.triangles)
			}
			if !form.hasNormal() {
				g.normalsComplete = false
			}

			// Fan anchored at the first corner: (c0,c1,c2), (c0,c2,c3), ...
			for i := 1; i+1 < len(corners); i++ {
				tri := [3]faceCorner{corners[0], corners[i], corners[i+1]}
				for k, c := range tri {
					v := Vertex{Position: positions[c.v]}
					if c.vt >= 0 {
						v.TexCoord = texCoords[c.vt]
					}
					if c.vn >= 0 {
						v.Normal = normals[c.vn]
					}
					g.indices[triangle*3+k] = uint32(welder.weld(c.v, v))
				}
				g.attributes[triangle] = active
				triangle++
			}
		}
	}
	if err := tok.Err(); err != nil {
		return nil, fmt.Errorf("read geometry: %w", err)
	}
	if triangle != counts.triangles {
		return nil, fmt.Errorf("emitted %d triangles, counted %d", triangle, counts.triangles)
	}

	g.vertices = welder.vertices
	return g, nil
}
