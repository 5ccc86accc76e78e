package models

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultMaterialName names the material synthesized when a model declares none.
const DefaultMaterialName = "default"

// Material holds the shading parameters of one MTL "newmtl" block.
type Material struct {
	Name      string
	Ambient   [4]float64 // RGBA in 0-1 range
	Diffuse   [4]float64
	Specular  [4]float64
	Shininess float64 // Ns / 1000
	Alpha     float64 // 1 = opaque

	// Texture paths exactly as written in the library; resolving and
	// decoding them is up to the renderer (see Model.TexturePaths).
	ColorMap string
	BumpMap  string
}

// NewMaterial returns a material with the MTL defaults.
func NewMaterial(name string) Material {
	return Material{
		Name:     name,
		Ambient:  [4]float64{0.2, 0.2, 0.2, 1},
		Diffuse:  [4]float64{0.8, 0.8, 0.8, 1},
		Specular: [4]float64{0, 0, 0, 1},
		Alpha:    1,
	}
}

// MaterialLibrary is a table of materials with a name lookup.
type MaterialLibrary struct {
	Materials []Material
	index     map[string]int
}

// Lookup returns the table index of the named material.
func (lib *MaterialLibrary) Lookup(name string) (int, bool) {
	i, ok := lib.index[name]
	return i, ok
}

// Len returns the number of materials.
func (lib *MaterialLibrary) Len() int {
	return len(lib.Materials)
}

// add appends mat. A repeated name resolves to the latest declaration.
func (lib *MaterialLibrary) add(mat Material) {
	if lib.index == nil {
		lib.index = make(map[string]int)
	}
	lib.index[mat.Name] = len(lib.Materials)
	lib.Materials = append(lib.Materials, mat)
}

// merge appends every material of other.
func (lib *MaterialLibrary) merge(other *MaterialLibrary) {
	for _, mat := range other.Materials {
		lib.add(mat)
	}
}

// LoadMaterialLibrary opens and parses an MTL file. It fails only if the file
// cannot be opened or read; malformed directives are ignored.
func LoadMaterialLibrary(path string) (*MaterialLibrary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open material library: %w", err)
	}
	defer f.Close()

	lib, err := ParseMaterialLibrary(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return lib, nil
}

// ParseMaterialLibrary parses MTL text in two passes: the first counts
// "newmtl" declarations so the table is allocated once, the second fills it.
func ParseMaterialLibrary(r io.ReadSeeker) (*MaterialLibrary, error) {
	count := 0
	tok := newTokenizer(r)
	for {
		keyword, _, ok := tok.next()
		if !ok {
			break
		}
		if keyword == "newmtl" {
			count++
		}
	}
	if err := tok.Err(); err != nil {
		return nil, err
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}

	lib := &MaterialLibrary{
		Materials: make([]Material, 0, count),
		index:     make(map[string]int, count),
	}

	// current is the index of the material being filled, -1 before the
	// first newmtl.
	current := -1
	tok = newTokenizer(r)
	for {
		keyword, fields, ok := tok.next()
		if !ok {
			break
		}

		if keyword == "newmtl" {
			lib.add(NewMaterial(strings.Join(fields, " ")))
			current = lib.Len() - 1
			continue
		}
		if current < 0 {
			continue
		}
		applyMaterialDirective(&lib.Materials[current], keyword, fields)
	}
	if err := tok.Err(); err != nil {
		return nil, err
	}

	return lib, nil
}

// applyMaterialDirective updates mat from one MTL line. Unknown or malformed
// lines leave mat unchanged.
func applyMaterialDirective(mat *Material, keyword string, fields []string) {
	switch keyword {
	case "Ka":
		parseColor(&mat.Ambient, fields)
	case "Kd":
		parseColor(&mat.Diffuse, fields)
	case "Ks":
		parseColor(&mat.Specular, fields)
	case "Ns":
		if v, ok := parseScalar(fields); ok {
			mat.Shininess = v / 1000
		}
	case "d":
		if v, ok := parseScalar(fields); ok {
			mat.Alpha = v
		}
	case "Tr":
		// Tr is transparency, the inverse of d.
		if v, ok := parseScalar(fields); ok {
			mat.Alpha = 1 - v
		}
	case "illum":
		if len(fields) > 0 {
			if n, err := strconv.Atoi(fields[0]); err == nil && n == 1 {
				mat.Specular = [4]float64{0, 0, 0, 1}
			}
		}
	case "map_Kd":
		if len(fields) > 0 {
			mat.ColorMap = fields[len(fields)-1]
		}
	case "map_bump", "map_Bump", "bump":
		if len(fields) > 0 {
			mat.BumpMap = fields[len(fields)-1]
		}
	}
}

// parseColor reads "r [g b]" into c and forces alpha to 1. A single value is
// applied to all three channels.
func parseColor(c *[4]float64, fields []string) {
	if len(fields) == 0 {
		return
	}
	r, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		// "Ka spectral file.rfl" and "Ka xyz ..." are not supported.
		return
	}
	g, b := r, r
	if len(fields) >= 3 {
		v := parseFloats(fields[1:], 2)
		g, b = v[0], v[1]
	}
	*c = [4]float64{r, g, b, 1}
}

func parseScalar(fields []string) (float64, bool) {
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
