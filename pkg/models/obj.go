package models

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Importer loads Wavefront OBJ files.
type Importer struct {
	// Options
	RebuildNormals         bool // If true, generate normals even when the file has them
	ForceTangents          bool // If true, generate tangents even without bump maps
	IgnoreMissingMaterials bool // If true, an unreadable mtllib is logged instead of failing

	// Logger receives import diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// NewImporter creates a new OBJ importer with default settings.
func NewImporter() *Importer {
	return &Importer{}
}

// LoadOBJ is a convenience function to load an OBJ file with default settings.
func LoadOBJ(path string) (*Model, error) {
	return NewImporter().LoadFile(path)
}

// Import replaces the model's contents with the OBJ file at path. On failure
// the model is left untouched.
func (m *Model) Import(path string, rebuildNormals bool) error {
	l := NewImporter()
	l.RebuildNormals = rebuildNormals

	loaded, err := l.LoadFile(path)
	if err != nil {
		return err
	}
	*m = *loaded
	return nil
}

// LoadFile loads an OBJ file from disk. Material libraries are resolved
// relative to the file's directory.
func (l *Importer) LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	m, err := l.Load(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	m.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m, nil
}

// Load imports OBJ text from r, which is read twice. dir is the directory
// material libraries are resolved against.
func (l *Importer) Load(r io.ReadSeeker, dir string) (*Model, error) {
	log := l.logger()

	lib := &MaterialLibrary{}
	loadLib := func(name string) error {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, filepath.FromSlash(name))
		}
		loaded, err := LoadMaterialLibrary(path)
		if err != nil {
			if l.IgnoreMissingMaterials {
				log.Warn("skipping material library", zap.String("path", path), zap.Error(err))
				return nil
			}
			return err
		}
		log.Debug("loaded material library", zap.String("path", path), zap.Int("materials", loaded.Len()))
		lib.merge(loaded)
		return nil
	}

	counts, err := scanGeometry(r, loadLib)
	if err != nil {
		return nil, err
	}
	log.Debug("sizing pass complete",
		zap.Int("positions", counts.positions),
		zap.Int("texcoords", counts.texCoords),
		zap.Int("normals", counts.normals),
		zap.Int("triangles", counts.triangles),
		zap.Int("skipped_lines", counts.skipped),
	)

	if lib.Len() == 0 {
		lib.add(NewMaterial(DefaultMaterialName))
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}

	geom, err := emitGeometry(r, counts, lib)
	if err != nil {
		return nil, err
	}
	for _, name := range geom.unknownMaterials {
		log.Debug("unknown material, using first material", zap.String("name", name))
	}

	m := &Model{
		vertices:         geom.vertices,
		indices:          geom.indices,
		attributes:       geom.attributes,
		materials:        lib.Materials,
		materialIndex:    lib.index,
		path:             dir,
		hasPositions:     counts.positions > 0,
		hasTextureCoords: counts.texCoords > 0,
		hasNormals:       geom.normalsComplete,
	}

	m.meshes = buildMeshes(m.attributes, m.materials)
	m.bounds = computeBounds(m.vertices)

	if l.RebuildNormals || !m.hasNormals {
		m.GenerateNormals()
	}
	if l.ForceTangents || m.hasBumpMaps() {
		m.GenerateTangents()
	}

	log.Debug("import complete",
		zap.Int("vertices", m.NumberOfVertices()),
		zap.Int("triangles", m.NumberOfTriangles()),
		zap.Int("materials", m.NumberOfMaterials()),
		zap.Int("meshes", m.NumberOfMeshes()),
		zap.Bool("tangents", m.hasTangents),
	)
	return m, nil
}

// GenerateNormals replaces every vertex normal with a smooth, area-weighted
// normal. The vertex buffer is not re-welded afterwards.
func (m *Model) GenerateNormals() {
	generateNormals(m.vertices, m.indices)
	m.hasNormals = true
}

// GenerateTangents computes tangents, bitangents and handedness for every
// vertex from its normal and texture coordinates.
func (m *Model) GenerateTangents() {
	generateTangents(m.vertices, m.indices)
	m.hasTangents = true
}

func (m *Model) hasBumpMaps() bool {
	for _, mat := range m.materials {
		if mat.BumpMap != "" {
			return true
		}
	}
	return false
}

func (l *Importer) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
